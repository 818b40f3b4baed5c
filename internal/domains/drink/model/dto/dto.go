package dto

import (
	"github.com/google/uuid"

	"arcade/internal/domains/drink/model"
	"arcade/shared"
	gDto "arcade/shared/dto"
	gModel "arcade/shared/model"
	"arcade/shared/timezone"
)

type CreateDrinkRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Price int    `json:"price" validate:"min=0"`
}

func (c *CreateDrinkRequest) ToModel(user string) model.Drink {
	return model.Drink{
		ID:    uuid.NewString(),
		Name:  c.Name,
		Price: c.Price,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateDrinkRequest struct {
	Name  string `db:"name"  json:"name"  validate:"omitempty,max=100"`
	Price *int   `db:"price" json:"price" validate:"omitempty,min=0"`
}

type DrinkResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	gDto.Metadata
}

func (r *DrinkResponse) FromModel(model model.Drink) {
	r.ID = model.ID
	r.Name = model.Name
	r.Price = model.Price
	r.Metadata.FromModel(model.Metadata)
}

type GetDrinksResponse struct {
	Drinks    []DrinkResponse `json:"drinks"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetDrinksResponse) FromModels(models []model.Drink, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Drinks = make([]DrinkResponse, len(models))
	for i, mod := range models {
		r.Drinks[i].FromModel(mod)
	}
}
