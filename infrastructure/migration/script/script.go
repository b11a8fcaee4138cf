package main

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/infrastructure/database/postgres"
	"github.com/vfg2006/tracionar-api/internal/config"
)

//go:embed schema.sql
var schema string

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("migration: iniciando")
}

// Divide o schema em statements individuais, ignorando linhas vazias
func statements(script string) []string {
	parts := strings.Split(script, ";")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		stmt := strings.TrimSpace(part)
		if stmt == "" {
			continue
		}
		result = append(result, stmt)
	}

	return result
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("migration: erro ao carregar a configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("migration: erro ao conectar ao banco de dados")
	}
	defer conn.Close()

	startTime := time.Now()
	stmts := statements(schema)

	err = conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		for i, stmt := range stmts {
			if _, err := q.ExecContext(ctx, stmt); err != nil {
				logrus.WithError(err).Errorf("migration: comando %d/%d falhou", i+1, len(stmts))
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.Fatal("migration: abortada, nenhuma alteração aplicada")
	}

	logrus.WithFields(logrus.Fields{
		"duration":   time.Since(startTime).String(),
		"statements": len(stmts),
	}).Info("migration: concluída")
}
