package dto

import (
	"github.com/google/uuid"

	"arcade/internal/domains/customer/model"
	"arcade/shared"
	"arcade/shared/constant"
	gDto "arcade/shared/dto"
	gModel "arcade/shared/model"
	"arcade/shared/timezone"
)

type CreateCustomerRequest struct {
	Name     string `json:"name"     validate:"omitempty,max=100"`
	Phone    string `json:"phone"    validate:"required,phone"`
	Discount int    `json:"discount" validate:"min=0,max=100"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Phone:     c.Phone,
		Discount:  c.Discount,
		LastVisit: timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	Name     string `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Discount *int   `db:"discount" json:"discount" validate:"omitempty,min=0,max=100"`
}

type CustomerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Hours     int    `json:"hours"`
	Discount  int    `json:"discount"`
	LastVisit string `json:"last_visit"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Hours = model.Hours
	r.Discount = model.Discount
	r.LastVisit = timezone.Format(model.LastVisit, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
