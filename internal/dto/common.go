package dto

// ListParams carries token-based pagination parameters for list endpoints.
type ListParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}
