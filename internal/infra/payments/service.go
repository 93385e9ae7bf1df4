package payments

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	baseURL string
}

func NewService(baseURL string) *Service {
	return &Service{baseURL: strings.TrimRight(baseURL, "/")}
}

// PaymentURL builds the link a client follows to settle an invoice. Until a
// real provider is integrated it points back at this server.
func (s *Service) PaymentURL(invoiceID uuid.UUID) string {
	return fmt.Sprintf("%s/payments/pay?invoice=%s", s.baseURL, invoiceID)
}
