package recipes

import (
	"context"
	"errors"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/avinashchandan12/bake-ready-core/internal/production"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

const recipeCols = `r.id, r.product_id, p.name, r.time_required_mins, r.yield_quantity,
	COALESCE(r.instructions,''), r.created_at, r.updated_at`

func scanRecipe(row pgx.Row) (*Recipe, error) {
	var rc Recipe
	if err := row.Scan(&rc.ID, &rc.ProductID, &rc.ProductName, &rc.TimeRequiredMins, &rc.YieldQuantity,
		&rc.Instructions, &rc.CreatedAt, &rc.UpdatedAt); err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *Repo) Create(ctx context.Context, in Input) (*Recipe, error) {
	var id uuid.UUID
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO recipes (product_id, time_required_mins, yield_quantity, instructions)
			VALUES ($1,$2,$3,NULLIF($4,''))
			RETURNING id
		`, in.ProductID, in.TimeRequiredMins, in.YieldQuantity, in.Instructions).Scan(&id); err != nil {
			return err
		}
		return insertIngredients(ctx, tx, id, in.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Update replaces the recipe header and its whole ingredient set.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, in Input) (*Recipe, error) {
	found := true
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE recipes SET product_id=$2, time_required_mins=$3, yield_quantity=$4,
				instructions=NULLIF($5,''), updated_at=now()
			WHERE id=$1
		`, id, in.ProductID, in.TimeRequiredMins, in.YieldQuantity, in.Instructions)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			found = false
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id=$1`, id); err != nil {
			return err
		}
		return insertIngredients(ctx, tx, id, in.Ingredients)
	})
	if err != nil || !found {
		return nil, err
	}
	return r.Get(ctx, id)
}

func insertIngredients(ctx context.Context, tx pgx.Tx, recipeID uuid.UUID, items []IngredientInput) error {
	for i, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, raw_material_id, quantity, position)
			VALUES ($1,$2,$3,$4)
		`, recipeID, it.MaterialID, it.Quantity, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Get returns the recipe with ingredients in recipe order, nil when missing.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*Recipe, error) {
	rc, err := scanRecipe(r.db.QueryRow(ctx, `
		SELECT `+recipeCols+`
		FROM recipes r JOIN products p ON p.id = r.product_id
		WHERE r.id=$1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rc.Ingredients, err = r.ingredients(ctx, id)
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func (r *Repo) ingredients(ctx context.Context, recipeID uuid.UUID) ([]Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ri.id, ri.raw_material_id, m.name, m.unit, ri.quantity, m.stock_quantity, ri.position
		FROM recipe_ingredients ri
		JOIN raw_materials m ON m.id = ri.raw_material_id
		WHERE ri.recipe_id = $1
		ORDER BY ri.position, ri.created_at
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Ingredient{}
	for rows.Next() {
		var in Ingredient
		if err := rows.Scan(&in.ID, &in.MaterialID, &in.MaterialName, &in.Unit, &in.Quantity, &in.Stock, &in.Position); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// List returns recipe headers without ingredients.
func (r *Repo) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+recipeCols+`
		FROM recipes r JOIN products p ON p.id = r.product_id
		ORDER BY p.name, r.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Recipe{}
	for rows.Next() {
		rc, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rc)
	}
	return out, rows.Err()
}

// Snapshot reads the recipe with current stock levels and converts it into
// calculator input. Inside a transaction it sees that transaction's stock.
func (r *Repo) Snapshot(ctx context.Context, id uuid.UUID) (*Recipe, []production.Ingredient, error) {
	rc, err := r.Get(ctx, id)
	if err != nil || rc == nil {
		return nil, nil, err
	}
	return rc, ToProduction(rc.Ingredients), nil
}

func ToProduction(items []Ingredient) []production.Ingredient {
	out := make([]production.Ingredient, 0, len(items))
	for _, it := range items {
		out = append(out, production.Ingredient{
			MaterialID:      it.MaterialID,
			Name:            it.MaterialName,
			Unit:            it.Unit,
			RequiredPerUnit: it.Quantity,
			AvailableStock:  it.Stock,
		})
	}
	return out
}
