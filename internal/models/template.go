package models

import "time"

// Template — шаблон документа во внешнем сервисе документов.
type Template struct {
	ID         string
	Name       string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// TemplateData — метаданные для заполнения шаблона.
type TemplateData struct {
	Title        string
	Author       string
	Description  string
	Tags         []string
	CreatorEmail string
}
