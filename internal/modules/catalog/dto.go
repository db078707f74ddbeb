package catalog

type CreateServiceRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	DurationMin int    `json:"duration_min" binding:"omitempty,gt=0"`
}

type UpdateServiceRequest struct {
	Title       string `json:"title" binding:"omitempty,min=3"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"omitempty,gt=0"`
	DurationMin int    `json:"duration_min" binding:"omitempty,gt=0"`
	Active      *bool  `json:"active"`
}

type ListQuery struct {
	Type   string `form:"type"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,gt=0,lte=100"`
	Offset int    `form:"offset" binding:"omitempty,gte=0"`
}
