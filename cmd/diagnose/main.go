// Command diagnose runs the triage conversation on the terminal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/logging"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/pkg/triage"
)

// stdinPrompter asks on stdout and reads answers from stdin.
type stdinPrompter struct {
	in *bufio.Scanner
}

func (p *stdinPrompter) Ask(prompt string) (string, error) {
	fmt.Print(prompt + " ")
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("input closed")
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *stdinPrompter) Say(msg string) {
	fmt.Println(msg)
}

func main() {
	dataDir := flag.String("data", filepath.Join("chatdata", "input"), "directory containing the reference CSV files")
	modelPath := flag.String("model", filepath.Join("trained_model", "model.json"), "path to the trained model artifact")
	flag.Parse()

	logging.Setup(false, slog.LevelWarn)

	t, err := triage.New(triage.WithDataDir(*dataDir), triage.WithModelPath(*modelPath))
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	fmt.Println("-----------------------------------HealthCare ChatBot-----------------------------------")
	session := triage.NewSession(t, &stdinPrompter{in: bufio.NewScanner(os.Stdin)})
	if _, err := session.Run(); err != nil {
		log.Fatalf("session failed: %v", err)
	}
}
