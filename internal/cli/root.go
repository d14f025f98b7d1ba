package cli

import (
	"fmt"
	"io"

	"github.com/Yossy4131/LT/internal/core/service"
	"github.com/Yossy4131/LT/internal/infrastructure/sqlstore"
	"github.com/Yossy4131/LT/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	cfg       *config.Config
	log       *logrus.Logger
	logCloser io.Closer
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sns",
	Short: "Simple SNS - a minimal social network",
	Long: `Simple SNS is a small social networking service.

It provides:
- User registration and password login
- Cookie sessions with CSRF protection
- A chronological feed, global and per user
- A JSON API and an admin CLI`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, logCloser, err = newLogger(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			err := logCloser.Close()
			logCloser = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultConfigPath+")")
}

// initServices initializes all services
func initServices() (*Services, error) {
	// Initialize database
	db, err := sqlstore.New(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	userRepo := sqlstore.NewUserRepository(db)
	postRepo := sqlstore.NewPostRepository(db)
	sessionRepo := sqlstore.NewSessionRepository(db)

	codec, err := service.NewSessionTokenCodec(cfg.SessionSecretKey, cfg.JWTAlgorithm)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Initialize services
	sessionManager := service.NewSessionManager(sessionRepo, cfg.SessionLifetime, log)
	authService := service.NewAuthService(userRepo, sessionManager, log)
	postService := service.NewPostService(postRepo, log)

	return &Services{
		DB:             db,
		AuthService:    authService,
		SessionManager: sessionManager,
		PostService:    postService,
		TokenCodec:     codec,
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB             *sqlstore.DB
	AuthService    *service.AuthService
	SessionManager *service.SessionManager
	PostService    *service.PostService
	TokenCodec     *service.SessionTokenCodec
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
