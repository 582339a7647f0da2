package states_module

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ethanbaker/states/internal/stores/funfacts"
	"github.com/ethanbaker/states/internal/stores/reference"
	"github.com/ethanbaker/states/pkg/states"
	"github.com/ethanbaker/states/pkg/utils"
	"github.com/go-sql-driver/mysql"
)

// Overlay backend names accepted by FUNFACTS_STORE
const (
	BackendAuto   = "auto"
	BackendMySQL  = "mysql"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// StatesService bundles the states service with the resources it owns
type StatesService struct {
	*states.Service

	backend string
	overlay states.OverlayStore
	closers []func() error
}

/** ---- INIT ---- */

// Init builds the reference store and overlay store selected by cfg and wires them into a states service
func Init(ctx context.Context, cfg *utils.Config) (*StatesService, error) {
	source, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	reference, err := states.NewReferenceStore(ctx, source)
	if err != nil {
		return nil, err
	}
	log.Printf("[STATES]: Loaded %d states from reference dataset", reference.Count())

	svc := &StatesService{}
	if err := svc.openOverlay(cfg); err != nil {
		return nil, err
	}

	service, err := states.NewService(&states.ServiceOptions{
		Reference:       reference,
		Overlay:         svc.overlay,
		ListConcurrency: cfg.GetIntWithDefault("LIST_CONCURRENCY", states.DEFAULT_LIST_CONCURRENCY),
	})
	if err != nil {
		svc.Close()
		return nil, err
	}

	svc.Service = service
	return svc, nil
}

// newSource picks the reference dataset source: S3, then a local file, then the embedded copy
func newSource(ctx context.Context, cfg *utils.Config) (states.Source, error) {
	if bucket := cfg.Get("STATES_DATA_S3_BUCKET"); bucket != "" {
		log.Printf("[STATES]: Reading reference dataset from s3://%s", bucket)
		return reference.NewS3Source(ctx, reference.S3Config{
			Endpoint:        cfg.Get("STATES_DATA_S3_ENDPOINT"),
			Region:          cfg.GetWithDefault("STATES_DATA_S3_REGION", "us-east-1"),
			AccessKeyID:     cfg.Get("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: cfg.Get("AWS_SECRET_ACCESS_KEY"),
			Bucket:          bucket,
			Key:             cfg.GetWithDefault("STATES_DATA_S3_KEY", "statesData.json"),
			UsePathStyle:    cfg.GetBool("STATES_DATA_S3_PATH_STYLE"),
		})
	}

	if path := cfg.Get("STATES_DATA_PATH"); path != "" {
		log.Printf("[STATES]: Reading reference dataset from %s", path)
		return reference.NewFileSource(path)
	}

	return reference.NewEmbeddedSource(), nil
}

// openOverlay opens the overlay store named by FUNFACTS_STORE
func (s *StatesService) openOverlay(cfg *utils.Config) error {
	backend, err := cfg.GetOneOf("FUNFACTS_STORE", BackendAuto, BackendAuto, BackendMySQL, BackendRedis, BackendMemory)
	if err != nil {
		return err
	}
	if backend == BackendAuto {
		switch {
		case cfg.Get("MYSQL_DATABASE") != "":
			backend = BackendMySQL
		case cfg.Get("REDIS_URL") != "":
			backend = BackendRedis
		default:
			backend = BackendMemory
		}
	}

	switch backend {
	case BackendMySQL:
		// Create MySQL config
		dbConfig := mysql.Config{
			User:      cfg.Get("MYSQL_USER"),
			Passwd:    cfg.Get("MYSQL_ROOT_PASSWORD"),
			Net:       "tcp",
			Addr:      fmt.Sprintf("%s:%s", cfg.GetWithDefault("MYSQL_HOST", "localhost"), cfg.GetWithDefault("MYSQL_PORT", "3306")),
			DBName:    cfg.Get("MYSQL_DATABASE"),
			ParseTime: true,
		}
		if dbConfig.DBName == "" {
			return fmt.Errorf("MYSQL_DATABASE must be set to use the mysql fun fact store")
		}

		store, err := funfacts.NewStore(dbConfig.FormatDSN())
		if err != nil {
			return err
		}
		s.overlay = store
		s.closers = append(s.closers, store.Close)

	case BackendRedis:
		store, err := funfacts.NewRedisStore(cfg.GetWithDefault("REDIS_URL", "redis://localhost:6379/0"))
		if err != nil {
			return err
		}
		s.overlay = store
		s.closers = append(s.closers, store.Close)

	case BackendMemory:
		log.Println("[STATES]: Warning, using in-memory fun fact store (data will not persist across restarts)")
		s.overlay = funfacts.NewInMemoryStore()

	}

	s.backend = backend
	log.Printf("[STATES]: Using %s fun fact store", backend)
	return nil
}

/** ---- SERVICE METHODS ---- */

// Backend returns the name of the overlay backend in use
func (s *StatesService) Backend() string {
	return s.backend
}

// Ping checks that the overlay backend is reachable
func (s *StatesService) Ping(ctx context.Context) error {
	if pinger, ok := s.overlay.(interface{ Ping(context.Context) error }); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// Close releases the overlay backend
func (s *StatesService) Close() error {
	var errs []error
	for _, closer := range s.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
