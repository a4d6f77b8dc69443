package users

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/pyhx/internal/common"
	"github.com/dmitrijs2005/pyhx/internal/cryptox"
	"github.com/dmitrijs2005/pyhx/internal/logging"
	"github.com/dmitrijs2005/pyhx/internal/shell/models"
)

// DefaultPassword is the password of the synthesized root account.
const DefaultPassword = "root"

const indent = "    "

type record struct {
	Password string `json:"password"`
	Role     string `json:"role"`
}

type JSONRepository struct {
	path string
	log  logging.Logger
}

func NewJSONRepository(path string, log logging.Logger) *JSONRepository {
	return &JSONRepository{path: path, log: log}
}

// DefaultUsers returns the store synthesized on first run.
func DefaultUsers() *models.Users {
	return models.NewUsers(models.Identity{
		Username:     models.RootUsername,
		PasswordHash: cryptox.HashPassword([]byte(DefaultPassword)),
		Role:         models.RoleAdmin,
	})
}

func (r *JSONRepository) Load(ctx context.Context) (*models.Users, bool) {
	users, err := r.read()
	if err == nil && users.Len() > 0 {
		return users, false
	}

	r.log.Warn(ctx, "credential store unusable, recreating defaults", "path", r.path, "error", err)

	users = DefaultUsers()
	if err := r.Save(ctx, users); err != nil {
		r.log.Error(ctx, "failed to persist default credential store", "path", r.path, "error", err)
	}
	return users, true
}

func (r *JSONRepository) read() (*models.Users, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}
	return decode(b)
}

func decode(b []byte) (*models.Users, error) {
	dec := json.NewDecoder(bytes.NewReader(b))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	users := models.NewUsers()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid username %v", tok)
		}

		var rec record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("user %q: %w", name, err)
		}
		role, err := models.ParseRole(rec.Role)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", name, err)
		}
		if rec.Password == "" {
			return nil, fmt.Errorf("user %q: empty password digest", name)
		}

		users.Put(models.Identity{Username: name, PasswordHash: rec.Password, Role: role})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return users, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// encode writes users as a JSON object in insertion order with 4-space
// indentation.
func encode(users *models.Users) ([]byte, error) {
	all := users.All()
	if len(all) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, id := range all {
		key, err := json.Marshal(id.Username)
		if err != nil {
			return nil, err
		}
		val, err := json.MarshalIndent(record{Password: id.PasswordHash, Role: string(id.Role)}, indent, indent)
		if err != nil {
			return nil, err
		}

		buf.WriteString(indent)
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(all)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func (r *JSONRepository) Save(ctx context.Context, users *models.Users) error {
	b, err := encode(users)
	if err != nil {
		return common.Errorf(common.ErrIOFailure, "cannot encode users: %w", err)
	}

	if err := r.writeAtomic(b); err != nil {
		return common.Errorf(common.ErrIOFailure, "cannot save users to %s: %w", r.path, err)
	}

	r.log.Debug(ctx, "credential store saved", "path", r.path, "users", users.Len())
	return nil
}

func (r *JSONRepository) writeAtomic(b []byte) (err error) {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), r.path); err != nil {
		return err
	}
	return nil
}

var _ Repository = (*JSONRepository)(nil)
