// Command export_csv writes the member directory to a CSV file.
//
//	go run ./cmd/scripts [-status all|active|inactive] members.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ccpc-cuj/membership-backend/internal/config"
	"github.com/ccpc-cuj/membership-backend/internal/logger"
	"github.com/ccpc-cuj/membership-backend/internal/models"
	mongorepo "github.com/ccpc-cuj/membership-backend/internal/repositories/mongodb"
	"github.com/ccpc-cuj/membership-backend/pkg/mongodb"
	"github.com/joho/godotenv"
)

var csvHeader = []string{
	"id", "name", "email", "department", "phone", "preferred_language",
	"skills", "reg_no", "batch", "active", "tasks", "registered_at",
}

func main() {
	status := flag.String("status", "all", "which members to export: all, active or inactive")
	flag.Parse()

	log := logger.New("info", "console")
	if flag.NArg() < 1 {
		log.Fatal().Msg("CSV file path is required as a command line argument")
	}

	n, err := run(*status, flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}
	log.Info().Int("members", n).Str("file", flag.Arg(0)).Msg("members exported")
}

// run exports the members matching status to csvFilePath and returns how many were written.
func run(status, csvFilePath string) (int, error) {
	filter, err := parseStatus(status)
	if err != nil {
		return 0, err
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return 0, fmt.Errorf("load configuration: %w", err)
	}

	client, err := mongodb.NewClient(cfg.MongoDB.URI, mongodb.Options{
		ServerSelectionTimeout: cfg.MongoDB.ServerSelectionTimeout,
		SocketTimeout:          cfg.MongoDB.SocketTimeout,
		OperationTimeout:       cfg.MongoDB.OperationTimeout,
	})
	if err != nil {
		return 0, fmt.Errorf("create MongoDB client: %w", err)
	}
	defer client.Disconnect(context.Background())

	dbName := cfg.MongoDB.Database
	if dbName == "" {
		dbName = mongodb.DatabaseFromURI(cfg.MongoDB.URI)
	}
	repo := mongorepo.NewMemberRepository(client.Database(dbName))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	members, err := repo.FindAll(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("load members: %w", err)
	}

	file, err := os.Create(csvFilePath)
	if err != nil {
		return 0, fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	if err := writeMembers(file, members); err != nil {
		return 0, fmt.Errorf("write CSV file: %w", err)
	}
	return len(members), file.Close()
}

// parseStatus accepts all, active or inactive, case-insensitively.
func parseStatus(value string) (models.MemberStatus, error) {
	status := models.MemberStatus(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case models.MemberStatusAll, models.MemberStatusActive, models.MemberStatusInactive:
		return status, nil
	}
	return "", fmt.Errorf("invalid -status %q: want all, active or inactive", value)
}

// writeMembers writes a header row and one row per member. Tasks are joined with "; ".
func writeMembers(w io.Writer, members []*models.Member) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range members {
		record := []string{
			m.ID.Hex(),
			m.Name,
			m.Email,
			m.Password,
			m.Phone,
			m.PreferredLanguage,
			m.Skills,
			m.RegistrationNumber,
			m.Batch,
			strconv.FormatBool(m.Active),
			strings.Join(m.Tasks, "; "),
			m.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write member %s: %w", m.ID.Hex(), err)
		}
	}
	writer.Flush()
	return writer.Error()
}
