package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bankrkit/bankr/internal/domain"
	"github.com/bankrkit/bankr/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName       = "config"
	configType       = "toml"
	ledgerPathKey    = "ledger.path"
	ledgerFileMode   = 0o600
	ledgerDirMode    = 0o700
	ledgerConfigDir  = ".bankr"
	ledgerConfigFile = "ledger.toml"
	tempFilePattern  = ".ledger-*.toml.tmp"
)

type Repository struct {
	ledgerPath string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.LedgerRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, ledgerConfigDir, ledgerConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, ledgerConfigDir))
	cfg.SetDefault(ledgerPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	ledgerPath := cfg.GetString(ledgerPathKey)
	if ledgerPath == "" {
		return nil, errors.New("ledger path is empty")
	}
	ledgerPath, err = normalizeLedgerPath(ledgerPath)
	if err != nil {
		return nil, err
	}

	return &Repository{ledgerPath: ledgerPath, mu: lockForPath(ledgerPath)}, nil
}

func (r *Repository) Load(ctx context.Context) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Account{}, err
	}

	sessions := make([]domain.Session, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		sessions = append(sessions, fromSessionSchema(entry))
	}

	return domain.RestoreAccount(file.Balance, sessions), nil
}

func (r *Repository) Save(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := fileSchema{
		Balance:  account.Balance,
		Sessions: make([]sessionSchema, 0, len(account.Sessions)),
	}
	for _, session := range account.Sessions {
		file.Sessions = append(file.Sessions, toSessionSchema(session))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.ledgerPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read ledger file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode ledger file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.ledgerPath), ledgerDirMode); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode ledger file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.ledgerPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp ledger file: %w", err)
	}

	if err := tempFile.Chmod(ledgerFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp ledger file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp ledger file: %w", err)
	}

	if err := os.Rename(tempName, r.ledgerPath); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.ledgerPath, ledgerFileMode); err != nil {
		return fmt.Errorf("chmod ledger file: %w", err)
	}

	return nil
}

func normalizeLedgerPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve ledger path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSessionSchema(session domain.Session) sessionSchema {
	var steps []stepSchema
	for _, step := range session.Steps {
		steps = append(steps, stepSchema{
			Index:        step.Index,
			BetPercent:   step.BetPercent,
			BetAmount:    step.BetAmount,
			Result:       string(step.Result),
			PnL:          step.PnL,
			BalanceAfter: step.BalanceAfter,
			Timestamp:    formatTime(step.Timestamp),
		})
	}

	return sessionSchema{
		ID:           string(session.ID),
		StartBalance: session.StartBalance,
		Active:       session.Active,
		CreatedAt:    formatTime(session.CreatedAt),
		Steps:        steps,
	}
}

func fromSessionSchema(session sessionSchema) domain.Session {
	var steps []domain.Step
	for _, step := range session.Steps {
		steps = append(steps, domain.Step{
			Index:        step.Index,
			BetPercent:   step.BetPercent,
			BetAmount:    step.BetAmount,
			Result:       domain.StepResult(step.Result),
			PnL:          step.PnL,
			BalanceAfter: step.BalanceAfter,
			Timestamp:    parseTime(step.Timestamp),
		})
	}

	return domain.Session{
		ID:           domain.SessionID(session.ID),
		StartBalance: session.StartBalance,
		Active:       session.Active,
		Steps:        steps,
		CreatedAt:    parseTime(session.CreatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
