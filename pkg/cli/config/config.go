package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
	"github.com/secmon-lab/toolhub/pkg/domain/types"
)

// Catalog is the seed file layout: a list of tools and a list of users
type Catalog struct {
	Tools []CatalogTool `toml:"tool"`
	Users []CatalogUser `toml:"user"`
}

// CatalogTool is one [[tool]] entry
type CatalogTool struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Category    string `toml:"category"`
	Description string `toml:"description"`
	Kind        string `toml:"kind"`
}

// Validate checks if the tool entry is valid
func (t *CatalogTool) Validate() error {
	if err := types.ValidateSlug(t.ID); err != nil {
		return goerr.Wrap(ErrInvalidToolID, err.Error(), goerr.V(ToolIDKey, t.ID))
	}
	if t.Name == "" {
		return goerr.Wrap(ErrMissingName, "tool name is required", goerr.V(ToolIDKey, t.ID))
	}
	if t.Category == "" {
		return goerr.Wrap(ErrMissingCategory, "tool category is required", goerr.V(ToolIDKey, t.ID))
	}
	if t.Kind != "" {
		if _, err := types.ParseToolKind(t.Kind); err != nil {
			return goerr.Wrap(ErrInvalidToolKind, err.Error(), goerr.V(ToolIDKey, t.ID), goerr.V(ToolKindKey, t.Kind))
		}
	}
	return nil
}

// ServedKind returns the built-in operation the entry is recorded for. An
// entry without kind whose ID is a built-in kind slug serves that kind.
func (t *CatalogTool) ServedKind() types.ToolKind {
	if t.Kind != "" {
		return types.ToolKind(t.Kind)
	}
	if kind := types.ToolKind(t.ID); kind.IsValid() {
		return kind
	}
	return ""
}

// ToModel converts the entry to a domain tool. Usage counters start at zero.
func (t *CatalogTool) ToModel() *model.Tool {
	return &model.Tool{
		ID:          model.ToolID(t.ID),
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		Kind:        t.ServedKind(),
	}
}

// CatalogUser is one [[user]] entry. A missing ID is generated on load.
type CatalogUser struct {
	ID        string    `toml:"id"`
	Name      string    `toml:"name"`
	Email     string    `toml:"email"`
	LastLogin time.Time `toml:"last_login"`
	Favorites []string  `toml:"favorites"`
}

// Validate checks if the user entry is valid
func (u *CatalogUser) Validate() error {
	if u.Name == "" {
		return goerr.Wrap(ErrMissingName, "user name is required", goerr.V(UserIDKey, u.ID))
	}
	return nil
}

func (u *CatalogUser) ToModel() *model.User {
	favorites := make([]model.ToolID, len(u.Favorites))
	for i, f := range u.Favorites {
		favorites[i] = model.ToolID(f)
	}
	return &model.User{
		ID:        model.UserID(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		LastLogin: u.LastLogin.UTC(),
		Favorites: favorites,
	}
}

// Validate checks the whole catalog. Favorites may reference tools that are
// not in this file since the repository can already hold them.
func (c *Catalog) Validate() error {
	toolIDs := make(map[string]bool)
	kinds := make(map[types.ToolKind]string)
	for _, tool := range c.Tools {
		if err := tool.Validate(); err != nil {
			return goerr.Wrap(err, "invalid tool")
		}
		if toolIDs[tool.ID] {
			return goerr.Wrap(ErrDuplicateToolID, "duplicate tool ID", goerr.V(ToolIDKey, tool.ID))
		}
		toolIDs[tool.ID] = true

		// Usage of an operation is recorded on exactly one entry
		if kind := tool.ServedKind(); kind != "" {
			if other, exists := kinds[kind]; exists {
				return goerr.Wrap(ErrDuplicateKind, "tool kind is already served",
					goerr.V(ToolIDKey, tool.ID),
					goerr.V(ToolKindKey, kind),
					goerr.V("served_by", other),
				)
			}
			kinds[kind] = tool.ID
		}
	}

	userIDs := make(map[string]bool)
	for _, user := range c.Users {
		if err := user.Validate(); err != nil {
			return goerr.Wrap(err, "invalid user")
		}
		if user.ID == "" {
			continue
		}
		if userIDs[user.ID] {
			return goerr.Wrap(ErrDuplicateUserID, "duplicate user ID", goerr.V(UserIDKey, user.ID))
		}
		userIDs[user.ID] = true
	}

	return nil
}

// LoadCatalog loads a tool/user catalog from a TOML file
func LoadCatalog(path string) (*Catalog, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "catalog file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(ConfigPathKey, path))
	}

	var catalog Catalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path))
	}

	if err := catalog.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed", goerr.V(ConfigPathKey, path))
	}

	for i := range catalog.Users {
		if catalog.Users[i].ID == "" {
			catalog.Users[i].ID = model.NewUserID().String()
		}
	}

	return &catalog, nil
}
