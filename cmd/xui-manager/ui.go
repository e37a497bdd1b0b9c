package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"xui-manager/internal/config"
	"xui-manager/internal/helpers"
	"xui-manager/internal/models"
	"xui-manager/internal/services"
)

var stdin = bufio.NewReader(os.Stdin)

// promptLine asks for one line of input and trims it
func promptLine(prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword asks for a line without echoing it
func promptPassword(prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// promptConfig fills in the missing required config fields interactively
func promptConfig(cfg *config.Config) error {
	var err error
	if cfg.URL == "" {
		cfg.URL, err = promptLine("Panel URL (e.g. https://your-domain.com:2053)")
		if err != nil {
			return err
		}
		cfg.URL = strings.TrimRight(cfg.URL, "/")
	}
	if cfg.Username == "" {
		cfg.Username, err = promptLine("Username")
		if err != nil {
			return err
		}
	}
	if cfg.Password == "" {
		cfg.Password, err = promptPassword("Password (will not be displayed)")
		if err != nil {
			return err
		}
	}
	verify, err := promptLine("Verify TLS certificate? [Y/n]")
	if err != nil {
		return err
	}
	cfg.VerifySSL = !strings.EqualFold(verify, "n") && !strings.EqualFold(verify, "no")
	return nil
}

// renderInboundTable prints the available inbounds with 1-based indices
func renderInboundTable(inbounds []models.Inbound) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Index", "ID", "Remark", "Protocol", "Port", "Down", "Up"})

	for i, inbound := range inbounds {
		down, up := helpers.CalculateInboundTraffic(inbound.ClientStats)
		table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(inbound.ID),
			inbound.Remark,
			strings.ToUpper(inbound.Protocol.String()),
			strconv.Itoa(inbound.Port),
			helpers.FormatGB(down),
			helpers.FormatGB(up),
		})
	}

	fmt.Println("\nAvailable inbounds:")
	table.Render()
}

// renderSummary prints the per-inbound outcome report
func renderSummary(inbounds []models.Inbound, results []services.Result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Inbound", "Status", "Action", "Message"})

	for _, result := range results {
		status := color.GreenString("Success")
		message := ""
		if result.Ok() {
			message = resultMessage(inbounds, result)
		} else {
			status = color.RedString("Failed")
			message = result.Err.Error()
		}
		table.Append([]string{result.Remark, status, string(result.Action), message})
	}

	fmt.Println("\nClient update summary:")
	table.Render()
}

func resultMessage(inbounds []models.Inbound, result services.Result) string {
	inbound, found := findInbound(inbounds, result.InboundID)
	if !found {
		return result.Client.Email
	}
	protocol := models.ParseProtocol(inbound.Protocol.String())
	return fmt.Sprintf("%s (secret: %s)", result.Client.Email, result.Client.Secret(protocol))
}
