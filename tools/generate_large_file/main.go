// Large Ledger File Generator
//
// This tool generates a large ledger file for performance testing and profiling.
// It creates realistic transactions and directives to stress-test the parser
// and builder.
//
// Usage:
//
//	go run main.go > large.ledger
//	go run main.go 20000000 > large.ledger  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/ptaledger/ast"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	accounts = []string{
		"assets:bank:checking",
		"assets:bank:savings",
		"assets:brokerage:cash",
		"assets:crypto:btc",
		"liabilities:creditcard:visa",
		"liabilities:creditcard:amex",
		"income:salary",
		"income:bonus",
		"income:investments:dividends",
		"expenses:food:groceries",
		"expenses:food:restaurant",
		"expenses:housing:rent",
		"expenses:housing:utilities",
		"expenses:transport:gas",
		"expenses:transport:transit",
		"expenses:shopping:clothing",
		"expenses:shopping:electronics",
		"expenses:entertainment:movies",
		"expenses:healthcare:medical",
		"expenses:taxes:federal",
		"expenses:commissions",
		"equity:openingbalances",
	}

	descriptions = []string{
		"Grocery shopping", "Fuel purchase", "Rent payment",
		"Salary deposit", "Stock purchase", "Utility bill",
		"Online purchase", "Restaurant dinner", "Coffee",
		"Monthly subscription", "Medical appointment",
		"Dividend payment", "Tax payment", `The "big" one`,
	}

	comments = []string{
		"", "", "", "reimbursable", "split with roommate", "see receipt",
	}

	annotations = []string{"*", "*", "*", "!", "txn"}
	currencies  = []string{"USD", "EUR", "GBP", "CAD", "BTC"}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	writeHeader()

	currentDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	bytesWritten := 0
	transactionCount := 0

	for bytesWritten < targetSize {
		var output string
		switch rand.Intn(10) {
		case 0, 1, 2, 3: // 40% - Simple transaction
			output = generateSimpleTransaction(currentDate)
			transactionCount++

		case 4, 5, 6: // 30% - Split transaction
			output = generateSplitTransaction(currentDate)
			transactionCount++

		case 7: // 10% - Heading with comments
			output = generateSection(currentDate)

		case 8: // 10% - Balance assertion
			output = generateBalanceAssertion(currentDate)

		case 9: // 10% - Commodity declaration
			output = generateCommodity(currentDate)
		}
		fmt.Print(output)
		bytesWritten += len(output)

		// Advance date by 0-4 days
		currentDate = currentDate.AddDate(0, 0, rand.Intn(5))
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d transactions\n", bytesWritten, transactionCount)
}

func writeHeader() {
	fmt.Println("; Large ledger file for performance testing")
	fmt.Println("; Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println()
	fmt.Println(`option "title" "Performance Test Ledger"`)
	fmt.Println(`option "operating_currency" "USD"`)
	fmt.Println()

	fmt.Println("* Accounts")
	for _, account := range accounts {
		fmt.Printf("2020-01-01 open %s\n", account)
	}
	fmt.Println()
}

func generateSimpleTransaction(date time.Time) string {
	amount := randAmount(10, 500)
	return transaction(date, []string{pick(accounts), pick(accounts)}, []decimal.Decimal{amount, amount.Neg()})
}

func generateSplitTransaction(date time.Time) string {
	amounts := []decimal.Decimal{
		randAmount(100, 500),
		randAmount(50, 200),
		randAmount(20, 100),
	}
	total := amounts[0].Add(amounts[1]).Add(amounts[2])

	return transaction(date,
		[]string{"expenses:food:restaurant", "expenses:food:groceries", "expenses:transport:gas", "assets:bank:checking"},
		append(amounts, total.Neg()),
	)
}

func transaction(date time.Time, postingAccounts []string, amounts []decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s%s\n", date.Format("2006-01-02"), pick(annotations), ast.Quote(pick(descriptions)), comment(pick(comments)))
	for i, account := range postingAccounts {
		fmt.Fprintf(&b, "  %s  %s%s\n", account, amounts[i].StringFixed(2), comment(pick(comments)))
	}
	b.WriteByte('\n')
	return b.String()
}

func generateSection(date time.Time) string {
	return fmt.Sprintf("* %s\n; %s\n\n", date.Format("January 2006"), pick(descriptions))
}

func generateBalanceAssertion(date time.Time) string {
	return fmt.Sprintf("%s balance %s %s USD\n\n", date.Format("2006-01-02"), pick(accounts), randAmount(1000, 50000).StringFixed(2))
}

func generateCommodity(date time.Time) string {
	return fmt.Sprintf("%s commodity %s\n", date.Format("2006-01-02"), pick(currencies))
}

// Helper functions

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}

func randAmount(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(min + rand.Float64()*(max-min)).Round(2)
}

func comment(s string) string {
	if s == "" {
		return ""
	}
	return " ; " + s
}
