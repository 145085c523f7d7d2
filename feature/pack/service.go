package pack

import (
	"context"
	"errors"
	"sync"

	"table-pack-maker/core/apperr"
	"table-pack-maker/core/database"
	"table-pack-maker/core/observer"
	"table-pack-maker/core/reconcile"
	"table-pack-maker/feature/songdb"
	"table-pack-maker/feature/table"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TableLoader downloads a difficulty table.
type TableLoader interface {
	Load(ctx context.Context, tableURL string, obs observer.Observer) (*table.Table, error)
}

// FindResult is the outcome of FindSongs.
type FindResult struct {
	Inputs reconcile.Inputs `json:"inputs"`
	Symbol string           `json:"symbol"`
	// Charts is the number of distinct charts in the table.
	Charts int `json:"charts"`
	*reconcile.Result
}

// BuildResult is the outcome of MakePack.
type BuildResult struct {
	Dir       string         `json:"dir"`
	Targets   []Target       `json:"targets"`
	Published *PublishReport `json:"published,omitempty"`
}

// Service runs the find and build steps and remembers the last find.
type Service struct {
	cfg       Config
	dbCfg     database.Config
	tables    TableLoader
	builder   *Builder
	publisher *Publisher
	session   *reconcile.Session
	logger    *zap.Logger
	openDB    func(database.Config, string) (*gorm.DB, error)

	// busy serialises top-level operations.
	busy sync.Mutex
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPublisher uploads every built pack.
func WithPublisher(p *Publisher) ServiceOption {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithBuilder replaces the default Builder.
func WithBuilder(b *Builder) ServiceOption {
	return func(s *Service) {
		s.builder = b
	}
}

// WithOpenDB replaces songdb.Open.
func WithOpenDB(fn func(database.Config, string) (*gorm.DB, error)) ServiceOption {
	return func(s *Service) {
		s.openDB = fn
	}
}

// NewService creates a Service.
func NewService(cfg Config, dbCfg database.Config, tables TableLoader, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		cfg:     cfg,
		dbCfg:   dbCfg,
		tables:  tables,
		builder: NewBuilder(cfg),
		session: reconcile.NewSession(),
		logger:  logger,
		openDB:  songdb.Open,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns a snapshot of the remembered find result.
func (s *Service) Session() reconcile.Snapshot {
	return s.session.Snapshot()
}

// FindSongs downloads the table, matches it against the song database and
// remembers the selected folders for MakePack. Any failure clears the session.
func (s *Service) FindSongs(ctx context.Context, in reconcile.Inputs, obs observer.Observer) (*FindResult, error) {
	if obs == nil {
		obs = observer.Nop{}
	}
	if !s.busy.TryLock() {
		return nil, s.fail(obs, "find", errBusy())
	}
	defer s.busy.Unlock()

	res, err := s.find(ctx, in, obs)
	if err != nil {
		s.session.Invalidate()
		return nil, s.fail(obs, "find", err)
	}
	return res, nil
}

func (s *Service) find(ctx context.Context, in reconcile.Inputs, obs observer.Observer) (*FindResult, error) {
	if in.DBPath == "" {
		return nil, apperr.Validation("enter songdb path")
	}
	if in.TableURL == "" {
		return nil, apperr.Validation("enter table url")
	}

	db, err := s.openDB(s.dbCfg, in.DBPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			s.logger.Warn("Failed to close song database", zap.Error(err))
		}
	}()

	tbl, err := s.tables.Load(ctx, in.TableURL, obs)
	if err != nil {
		return nil, err
	}

	matcher := songdb.NewMatcher(db,
		songdb.WithBatchSize(s.cfg.BatchSize),
		songdb.WithBaseDir(songdb.BaseDir(s.dbCfg, in.DBPath, s.cfg.SongsRoot)),
	)
	coverage, err := matcher.FindFolders(ctx, tbl.Hashes())
	if err != nil {
		return nil, err
	}

	result := reconcile.Reconcile(tbl.Required(), coverage, tbl.Charts, tbl.LevelOrder())
	result.Report(obs, tbl.Meta.Symbol)
	s.session.Store(in, tbl.Meta.Symbol, result)

	s.logger.Info("Table matched",
		zap.String("table_url", in.TableURL),
		zap.Int("charts", result.Total),
		zap.Int("found", result.Found),
		zap.Int("folders", len(result.SelectedFolders)),
	)

	return &FindResult{
		Inputs: in,
		Symbol: tbl.Meta.Symbol,
		Charts: len(tbl.Charts),
		Result: result,
	}, nil
}

// MakePack copies the folders remembered by the last FindSongs for the same inputs
// into a new pack, then publishes it when a Publisher is configured.
func (s *Service) MakePack(ctx context.Context, in reconcile.Inputs, obs observer.Observer) (*BuildResult, error) {
	if obs == nil {
		obs = observer.Nop{}
	}
	if !s.busy.TryLock() {
		return nil, s.fail(obs, "build", errBusy())
	}
	defer s.busy.Unlock()

	result, ok := s.session.Result(in)
	if !ok {
		return nil, s.fail(obs, "build", apperr.Validation(`run "find" for this database and table first`))
	}

	dir, err := s.builder.Build(ctx, result.SelectedFolders, obs)
	if err != nil {
		return &BuildResult{Dir: dir}, s.fail(obs, "build", err)
	}
	out := &BuildResult{Dir: dir, Targets: TargetNames(result.SelectedFolders)}
	s.logger.Info("Pack created", zap.String("dir", dir), zap.Int("folders", len(out.Targets)))

	if s.publisher != nil {
		report, err := s.publisher.Publish(ctx, dir, obs)
		out.Published = report
		if err != nil {
			return out, s.fail(obs, "publish", err)
		}
	}
	return out, nil
}

// fail reports err to the observer as one line and logs it.
func (s *Service) fail(obs observer.Observer, op string, err error) error {
	obs.Status(err.Error())
	s.logger.Warn("Operation failed",
		zap.String("op", op),
		zap.String("kind", string(apperr.KindOf(err))),
		zap.Error(err),
	)
	return err
}

// ErrBusy is returned while another find or build is running.
var ErrBusy = errors.New("another operation is still running")

func errBusy() error {
	return apperr.New(apperr.KindValidation, "", ErrBusy)
}
