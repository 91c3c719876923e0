package types

// Filter - разобранные параметры списочного запроса:
// ?filter[status]=new&sort[created_at]=desc&limit=10&page=2.
// Search заполняется из ?search= и трактуется каждым репозиторием по-своему.
type Filter struct {
	Search         string            `json:"search,omitempty"`
	Sort           map[string]string `json:"sort,omitempty"`
	Filter         map[string]any    `json:"filter,omitempty"`
	Limit          int               `json:"limit"`
	Offset         int               `json:"offset"`
	Page           int               `json:"page"`
	WithPagination bool              `json:"with_pagination"`
}
