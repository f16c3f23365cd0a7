package configstore

import (
	"encoding/json"
	"fmt"
	"os"
)

// Taxonomy is the category and payment-method configuration document.
// Category and payment-method strings on records are free text and are
// not validated against it; it exists to guide clients.
type Taxonomy struct {
	Categories     []string `json:"categories"`
	PaymentMethods []string `json:"payment_methods"`
}

// defaultTaxonomy is served when no categories file exists. Unlike the
// budgets file, absence here is not reportable: the fallback is silent.
var defaultTaxonomy = Taxonomy{
	Categories: []string{
		"Food & Dining", "Transportation", "Shopping", "Entertainment",
		"Bills & Utilities", "Healthcare", "Travel", "Education",
		"Personal Care", "Home", "Miscellaneous",
	},
	PaymentMethods: []string{
		"Cash", "Credit Card", "Debit Card", "Bank Transfer",
		"Digital Wallet", "Check",
	},
}

// CategoryStore serves the read-only taxonomy document.
type CategoryStore struct {
	path string
}

// NewCategoryStore creates a store backed by the given file path.
func NewCategoryStore(path string) *CategoryStore {
	return &CategoryStore{path: path}
}

// Raw returns the categories file contents, or the built-in default
// taxonomy when the file is absent.
func (s *CategoryStore) Raw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return json.MarshalIndent(defaultTaxonomy, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	return data, nil
}
