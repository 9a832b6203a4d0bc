package credit

// CreatePackageRequest for POST /api/credit-package
type CreatePackageRequest struct {
	Name         string `json:"name" validate:"required,max=50"`
	CreditAmount *int   `json:"credit_amount" validate:"required,gte=0"`
	Price        *int   `json:"price" validate:"required,gte=0"`
}
