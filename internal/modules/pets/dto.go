package pets

type CreatePetRequest struct {
	Name     string `json:"name" binding:"required,min=1"`
	Species  string `json:"species" binding:"required"`
	Breed    string `json:"breed"`
	AgeYears int    `json:"age_years" binding:"omitempty,gte=0,lte=50"`
	Notes    string `json:"notes"`
}

type UpdatePetRequest struct {
	Name     string `json:"name" binding:"omitempty,min=1"`
	Breed    string `json:"breed"`
	AgeYears int    `json:"age_years" binding:"omitempty,gte=0,lte=50"`
	Notes    string `json:"notes"`
}
