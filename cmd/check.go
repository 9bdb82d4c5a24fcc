package cmd

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/fatcatfablab/hwbot/homework"
	"github.com/fatcatfablab/hwbot/practicum"
	"github.com/spf13/cobra"
)

var (
	since time.Duration

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Poll once and print the verdict for the latest homework",
		Run:   check,
	}
)

func init() {
	checkCmd.Flags().DurationVar(&since, "since", 0, "Only look at homeworks changed in this window. 0 means all of them")
	rootCmd.AddCommand(checkCmd)
}

func check(_ *cobra.Command, _ []string) {
	if cfg.APIToken == "" {
		log.Fatal("CRITICAL: missing required environment variables: PRACTICUM_TOKEN")
	}

	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		log.Fatalf("failed to parse %s: %s", cfg.Endpoint, err)
	}

	from := time.Unix(0, 0)
	if since > 0 {
		from = time.Now().Add(-since)
	}

	resp, err := practicum.New(endpoint, cfg.APIToken, cfg.Timeout).GetAPIAnswer(context.Background(), from)
	if err != nil {
		log.Fatalf("error polling homework statuses: %s", err)
	}
	if err := homework.CheckResponse(resp); err != nil {
		log.Fatalf("unexpected answer: %s", err)
	}

	hw, ok, err := homework.Latest(resp)
	if err != nil {
		log.Fatalf("unexpected answer: %s", err)
	}
	if !ok {
		fmt.Printf("No homeworks since %s\n", from.Format(time.DateTime))
		return
	}

	msg, err := cfg.Verdicts.ParseStatus(hw)
	if err != nil {
		log.Fatalf("error parsing status: %s", err)
	}
	fmt.Println(msg)
}
