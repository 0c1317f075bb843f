package utils

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"github.com/sortetech/recarga-sorte-backend/internal/repositories"
)

// CSVImporter builds Entry and Recharge records from exported spreadsheet
// files. It only parses: validation verdicts are never assigned here — that
// is the matching engine's job. Column positions are resolved by header name
// so upstream column reshuffles don't break imports.
type CSVImporter struct {
	entryRepo    repositories.EntryRepository
	rechargeRepo repositories.RechargeRepository
}

// NewCSVImporter creates a new CSVImporter
func NewCSVImporter(entryRepo repositories.EntryRepository, rechargeRepo repositories.RechargeRepository) *CSVImporter {
	return &CSVImporter{
		entryRepo:    entryRepo,
		rechargeRepo: rechargeRepo,
	}
}

// ImportResult summarizes one import pass
type ImportResult struct {
	TotalRows int      `json:"totalRows"`
	Created   int      `json:"created"`
	Errors    []string `json:"errors"`
}

// ImportEntries imports ticket entries from a CSV file. Rows with an
// unparseable timestamp are still imported with a zero ticket time so the
// engine can verdict them INVALID_TICKET_TIME instead of silently dropping
// them.
func (i *CSVImporter) ImportEntries(ctx context.Context, filePath string) (*ImportResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	gameIDIdx := findColumnIndex(header, []string{"Game ID", "GameId", "Player", "ID Jogo"})
	timeIdx := findColumnIndex(header, []string{"Ticket Time", "Date", "Data", "Data/Hora"})
	numbersIdx := findColumnIndex(header, []string{"Numbers", "Chosen Numbers", "Dezenas", "Numeros"})
	contestIdx := findColumnIndex(header, []string{"Contest", "Concurso"})
	drawLabelIdx := findColumnIndex(header, []string{"Draw Date", "Data Sorteio", "Draw Date Label"})
	ticketNumberIdx := findColumnIndex(header, []string{"Ticket", "Ticket Number", "Bilhete"})

	if gameIDIdx == -1 || timeIdx == -1 {
		return nil, fmt.Errorf("Game ID or Ticket Time column not found in CSV")
	}

	result := &ImportResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error reading row: %v", err))
			continue
		}
		result.TotalRows++

		gameID := strings.TrimSpace(row[gameIDIdx])
		if gameID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: No game ID found", result.TotalRows))
			continue
		}

		var ticketTime time.Time
		if raw := strings.TrimSpace(row[timeIdx]); raw != "" {
			ticketTime, err = ParseBrazilTime(raw)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Invalid ticket time: %s", result.TotalRows, raw))
				ticketTime = time.Time{}
			}
		}

		entry := &models.Entry{
			GameID:     gameID,
			TicketTime: ticketTime,
		}
		if numbersIdx != -1 {
			entry.ChosenNumbers = ParseChosenNumbers(row[numbersIdx])
		}
		if contestIdx != -1 {
			entry.Contest = strings.TrimSpace(row[contestIdx])
		}
		if drawLabelIdx != -1 {
			entry.DrawDateLabel = strings.TrimSpace(row[drawLabelIdx])
		}
		if ticketNumberIdx != -1 {
			entry.TicketNumber = strings.TrimSpace(row[ticketNumberIdx])
		}

		if err := i.entryRepo.Create(ctx, entry); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Failed to create entry: %v", result.TotalRows, err))
			continue
		}
		result.Created++
	}
	return result, nil
}

// ImportRecharges imports recharge events from a CSV file
func (i *CSVImporter) ImportRecharges(ctx context.Context, filePath string) (*ImportResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	gameIDIdx := findColumnIndex(header, []string{"Game ID", "GameId", "Player", "ID Jogo"})
	rechargeIDIdx := findColumnIndex(header, []string{"Recharge ID", "RechargeId", "Transaction", "ID Recarga"})
	timeIdx := findColumnIndex(header, []string{"Recharge Time", "Date", "Data", "Data/Hora"})
	amountIdx := findColumnIndex(header, []string{"Amount", "Valor", "Recharge Amount"})

	if gameIDIdx == -1 || rechargeIDIdx == -1 || timeIdx == -1 {
		return nil, fmt.Errorf("required recharge columns not found in CSV")
	}

	result := &ImportResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error reading row: %v", err))
			continue
		}
		result.TotalRows++

		gameID := strings.TrimSpace(row[gameIDIdx])
		rechargeID := strings.TrimSpace(row[rechargeIDIdx])
		if gameID == "" || rechargeID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Missing game ID or recharge ID", result.TotalRows))
			continue
		}

		rechargeTime, err := ParseBrazilTime(row[timeIdx])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Invalid recharge time: %s", result.TotalRows, row[timeIdx]))
			continue
		}

		var amount float64
		if amountIdx != -1 && row[amountIdx] != "" {
			amountStr := strings.TrimSpace(row[amountIdx])
			amountStr = strings.ReplaceAll(amountStr, "R$", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
			amount, err = strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Invalid amount: %s", result.TotalRows, row[amountIdx]))
				amount = 0
			}
		}

		recharge := &models.Recharge{
			GameID:       gameID,
			RechargeID:   rechargeID,
			RechargeTime: rechargeTime,
			Amount:       amount,
		}
		if err := i.rechargeRepo.Create(ctx, recharge); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Failed to create recharge: %v", result.TotalRows, err))
			continue
		}
		result.Created++
	}
	return result, nil
}

// findColumnIndex finds the index of a column by possible names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}
