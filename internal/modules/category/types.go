package category

// CreateCategoryDTO is the creation payload.
type CreateCategoryDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`
	Parent      string `json:"parent"`
}

// UpdateCategoryDTO carries a partial update. Nil fields are left untouched;
// an empty Parent string detaches the category from its parent.
type UpdateCategoryDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Image       *string `json:"image"`
	Parent      *string `json:"parent"`
}
