package log

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger expõe o subconjunto de logrus usado pela API
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
}

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"

	// CorrelationIDField é o nome do campo gravado em cada linha de log da requisição
	CorrelationIDField = "correlation_id"

	// CorrelationIDHeader é aceito na entrada e devolvido na resposta
	CorrelationIDHeader = "X-Correlation-ID"
)

type logger struct {
	entry *logrus.Entry
}

// L é o logger global, ligado ao logger padrão do logrus
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

// Setup aplica o formato de texto com timestamp completo e o nível configurado.
// Um nível desconhecido cai para info e é devolvido como efetivo.
func Setup(level string) logrus.Level {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("log: nível inválido %q, usando info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

	return lvl
}

// SetupTestLogger direciona a saída para out em nível debug
func SetupTestLogger(out io.Writer) {
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	logrus.SetLevel(logrus.DebugLevel)

	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
}

func (l *logger) WithField(key string, value any) Logger {
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

func (l *logger) Debug(args ...any) { l.entry.Debug(args...) }

func (l *logger) Info(args ...any) { l.entry.Info(args...) }

func (l *logger) Warn(args ...any) { l.entry.Warn(args...) }

func (l *logger) Warnf(format string, args ...any) { l.entry.Warnf(format, args...) }

func (l *logger) Error(args ...any) { l.entry.Error(args...) }

func (l *logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

// WithCorrelationID guarda o ID recebido no contexto ou gera um novo quando ausente ou inválido
func WithCorrelationID(ctx context.Context, incoming string) (context.Context, string) {
	correlationID := incoming
	if _, err := uuid.Parse(incoming); err != nil {
		correlationID = uuid.New().String()
	}
	return context.WithValue(ctx, correlationIDKey, correlationID), correlationID
}

func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(correlationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// ForContext devolve um logger com o ID de correlação da requisição, quando houver
func ForContext(ctx context.Context) Logger {
	if ctx == nil {
		return L
	}

	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		return L.WithField(CorrelationIDField, correlationID)
	}

	return L
}
