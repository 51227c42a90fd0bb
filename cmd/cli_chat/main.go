package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"money-mind/internal/domain"
	"money-mind/internal/service"
)

// Cliente de terminal: corre el guion completo en local, sin API ni
// store, y al completar imprime insights y recomendaciones.
func main() {
	reader := bufio.NewReader(os.Stdin)

	logger := zap.NewExample()
	defer logger.Sync()

	script := service.DefaultScript()
	engine, first, err := service.NewConversationEngine(script)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("===== Financial Therapy Session =====")
	fmt.Printf("\nGuide: %s\n", first.Text)

	for !engine.Terminal() {
		fmt.Print("You: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nSesion abandonada.")
			return
		}

		outcome := engine.SubmitResponse(line)
		if !outcome.Accepted {
			fmt.Println("(say something, even a few words is fine)")
			continue
		}
		if outcome.Completed {
			printResult(reader, *outcome.Result)
			return
		}
		fmt.Printf("\nGuide: %s\n", outcome.NextTurn.Text)
	}
}

func printResult(reader *bufio.Reader, result domain.SessionResult) {
	insights := result.Insights
	archetype := insights.ArchetypeOrDefault()

	fmt.Println("\n===== Your Money Story =====")
	fmt.Printf("Archetype:       %s\n", archetype)
	if insights.EmotionalState != "" {
		fmt.Printf("Emotional state: %s\n", insights.EmotionalState)
	}
	if insights.RiskLevel != "" {
		fmt.Printf("Risk level:      %s\n", insights.RiskLevel)
	}
	if len(insights.KeyTraits) > 0 {
		fmt.Printf("Key traits:      %s\n", strings.Join(insights.KeyTraits, ", "))
	}
	if len(insights.FinancialGoals) > 0 {
		fmt.Printf("Goals:           %s\n", strings.Join(insights.FinancialGoals, ", "))
	}

	fmt.Print("\nMonthly income for a concrete budget (enter to skip): ")
	income := readAmount(reader)

	recs := service.NewRecommendationService().RecommendationsFor(insights, income, income/4)

	fmt.Printf("\n--- Budget (%s) ---\n", recs.Budget.Philosophy)
	for _, line := range recs.Budget.Lines {
		if line.Amount > 0 {
			fmt.Printf("  %-20s %3d%%  $%.2f\n", line.Category, line.Percent, line.Amount)
		} else {
			fmt.Printf("  %-20s %3d%%\n", line.Category, line.Percent)
		}
	}

	fmt.Printf("\n--- Investments (%s) ---\n", recs.Investments.RiskNote)
	for _, line := range recs.Investments.Lines {
		fmt.Printf("  %-24s %3d%%  e.g. %s\n", line.AssetClass, line.Percent, line.ExampleFund)
	}

	fmt.Println("\n--- Suggested goals ---")
	for _, g := range recs.Goals {
		fmt.Printf("  * %s\n", g)
	}

	fmt.Println("\n--- Action plan ---")
	for i, step := range recs.ActionPlan {
		fmt.Printf("  %d. %s\n", i+1, step)
	}
}

func readAmount(reader *bufio.Reader) float64 {
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
