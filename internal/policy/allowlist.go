package policy

import "strings"

// AllowList — список доменов e-mail, которым разрешён доступ.
// Пустой список разрешает всех.
type AllowList struct {
	domains map[string]struct{}
}

// NewAllowList строит список из доменов конфигурации. Каждый элемент может
// содержать несколько доменов через запятую; пробелы и регистр игнорируются.
func NewAllowList(entries ...string) AllowList {
	domains := make(map[string]struct{})

	for _, entry := range entries {
		for _, d := range strings.Split(entry, ",") {
			d = strings.ToLower(strings.TrimSpace(d))
			if d == "" {
				continue
			}
			domains[d] = struct{}{}
		}
	}

	return AllowList{domains: domains}
}

// Empty — список не задан (разрешены все).
func (a AllowList) Empty() bool { return len(a.domains) == 0 }

// Allows проверяет e-mail по домену. Адрес без домена отклоняется,
// если список не пуст.
func (a AllowList) Allows(email string) bool {
	if a.Empty() {
		return true
	}

	i := strings.LastIndexByte(email, '@')
	if i < 0 || i == len(email)-1 {
		return false
	}

	_, ok := a.domains[strings.ToLower(email[i+1:])]
	return ok
}
