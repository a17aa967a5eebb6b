package deps

import (
	"context"
	"fmt"
	"passreset/internal/config"
	dl "passreset/internal/core/domain/logging"
	drl "passreset/internal/core/domain/rate_limiter"
	duow "passreset/internal/core/domain/unit_of_work"
	"passreset/internal/core/domain/user"
	"passreset/internal/db"
	uow "passreset/internal/db/unit_of_work"
	dbuser "passreset/internal/db/user"
	"passreset/internal/implementations/email"
	"passreset/internal/implementations/logging"
	passwordhasher "passreset/internal/implementations/password_hasher"
	ratelimiter "passreset/internal/implementations/rate_limiter"
	tokenminter "passreset/internal/implementations/token_minter"
	"passreset/internal/rabbitmq"
	passwordevents "passreset/internal/rabbitmq/publishers/password_events"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	RateLimiter drl.RateLimiter

	EmailTransport email.Transport

	PasswordHasher                user.PasswordHasher
	PasswordResetTokenMinter      user.PasswordResetTokenMinter
	PasswordResetTokenSender      user.PasswordResetTokenSender
	PasswordChangedEventPublisher user.PasswordChangedEventPublisher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	deps.applyMigrations()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenMinter = tokenminter.NewHMAC(deps.Config.Secret)

	deps.EmailTransport = deps.initEmailTransport()
	deps.PasswordResetTokenSender = email.NewPasswordResetTokenSender(
		deps.EmailTransport,
		deps.Config.PasswordResetBaseURL,
	)

	closePasswordEventsPublisher := deps.initPasswordEventsPublisher()
	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closePasswordEventsPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) applyMigrations() {
	if !deps.Config.AutoMigrate {
		return
	}
	if err := db.ApplyMigrations(deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "DB migrations have been applied.")
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	if !deps.Config.IsRabbitmqEnabled() {
		deps.Logger.Info(context.Background(), "RabbitMQ is disabled, password events will not be published.")
		return func() {}
	}
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initPasswordEventsPublisher() func() {
	if deps.Rabbitmq == nil {
		return func() {}
	}
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	exchange := deps.Config.RabbitmqPasswordEventsExchange
	if err := rabbitmqChannel.DeclareTopicExchange(exchange); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}

	deps.PasswordChangedEventPublisher = passwordevents.NewRabbitMQ(deps.Logger, rabbitmqChannel, exchange)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down password events publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Password events publisher shut down.")
	}
}

func (deps *Deps) initEmailTransport() email.Transport {
	switch deps.Config.EmailBackend {
	case config.EmailBackendSMTP:
		transport, err := email.NewSMTP(email.SMTPConfig{
			Host:     deps.Config.SMTPHost,
			Port:     deps.Config.SMTPPort,
			Username: deps.Config.SMTPUsername,
			Password: deps.Config.SMTPPassword,
			TLS:      deps.Config.SMTPTLS,
			From:     deps.Config.EmailSender,
		})
		if err != nil {
			panic(err)
		}
		return transport
	default:
		return email.NewSES(deps.initAwsConfig(), deps.Config.EmailSender)
	}
}

func (deps *Deps) initAwsConfig() aws.Config {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
