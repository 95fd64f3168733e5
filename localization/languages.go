package localization

import (
	"context"

	"github.com/goliatone/go-progeny-cache/models"
)

// LanguageRegistry lists the languages every item is replicated to.
type LanguageRegistry interface {
	GetAllLanguages(ctx context.Context) ([]*models.KinaUnaLanguage, error)
}
