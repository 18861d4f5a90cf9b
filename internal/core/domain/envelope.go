package domain

// Response is the single-resource envelope every backend call returns:
// {success, message?, data?, errors?}.
type Response[T any] struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    *T                  `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Page is the paginated list envelope: {success, message?, data[], meta?, links?}.
type Page[T any] struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Data    []T        `json:"data"`
	Meta    *PageMeta  `json:"meta,omitempty"`
	Links   *PageLinks `json:"links,omitempty"`
}

type PageMeta struct {
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Total       int64  `json:"total"`
	From        *int64 `json:"from"`
	To          *int64 `json:"to"`
}

type PageLinks struct {
	First *string `json:"first"`
	Last  *string `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// EmptyPage is the zero-result page substituted for absent or malformed list
// bodies.
func EmptyPage[T any]() *Page[T] {
	return &Page[T]{Success: true, Data: []T{}}
}

// Total returns meta.total, or the length of data when meta is absent.
func (p *Page[T]) Total() int64 {
	if p == nil {
		return 0
	}
	if p.Meta != nil {
		return p.Meta.Total
	}
	return int64(len(p.Data))
}
