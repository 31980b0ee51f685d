package repository

import "context"

// DocumentRepository - хранилище готовых чертежей
type DocumentRepository interface {
	// Save записывает документ целиком и возвращает путь к нему
	Save(ctx context.Context, name string, data []byte) (string, error)

	// Path возвращает путь, по которому будет сохранён документ
	Path(name string) string
}
