package dialog

type State string

const (
	StateIdle State = "idle"

	// /estimate
	StateEstimatePickRecipe State = "estimate_pick_recipe"

	// /produce
	StateProducePickRecipe State = "produce_pick_recipe"
	StateProduceQty        State = "produce_qty"
	StateProduceMinutes    State = "produce_minutes"
	StateProduceConfirm    State = "produce_confirm"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
