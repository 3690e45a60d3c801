package store

import (
	"path/filepath"
	"strings"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
	"github.com/shopspring/decimal"
)

// MenuStore reads and rewrites menu.txt (item,price,category, unquoted).
type MenuStore struct {
	path string
}

func NewMenuStore(dataDir string) *MenuStore {
	return &MenuStore{path: filepath.Join(dataDir, constants.MenuFile)}
}

// Load returns the menu in file order. Rows without exactly three parts or
// with an unparsable price are skipped.
func (s *MenuStore) Load() ([]model.MenuItem, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}

	items := make([]model.MenuItem, 0, len(lines))
	for i, line := range lines {
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			util.LogDebugf("skip malformed menu line %d", i+1)
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			util.LogDebugf("skip menu line %d: bad price %q", i+1, parts[1])
			continue
		}
		items = append(items, model.MenuItem{
			Name:     strings.TrimSpace(parts[0]),
			Price:    price,
			Category: strings.TrimSpace(parts[2]),
		})
	}
	return items, nil
}

// Save rewrites menu.txt with items.
func (s *MenuStore) Save(items []model.MenuItem) error {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = it.Name + "," + util.FormatAmount(it.Price) + "," + it.Category
	}
	return writeLines(s.path, lines)
}
