package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/msgram/internal/hermes"
)

// watchedEvent is one line of watch output.
type watchedEvent struct {
	Subject string          `json:"subject"`
	Event   json.RawMessage `json:"event"`
}

func newWatchCmd(a *app) *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print msgram events from hermes as JSON lines until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Hermes.URL == "" {
				return errors.New("watch needs hermes.url")
			}
			hc, err := hermes.NewNATSClient(cmd.Context(), a.cfg.Hermes.URL, a.logger)
			if err != nil {
				return err
			}
			defer hc.Close()
			return watch(cmd, hc, subject)
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", hermes.SubjectAll, "subject filter")
	return cmd
}

// watch streams events from c until the command context ends.
func watch(cmd *cobra.Command, c hermes.Client, subject string) error {
	out := cmd.OutOrStdout()
	var mu sync.Mutex
	enc := json.NewEncoder(out)

	err := c.Subscribe(subject, func(subj string, data []byte) {
		if !json.Valid(data) {
			data, _ = json.Marshal(string(data))
		}
		mu.Lock()
		defer mu.Unlock()
		_ = enc.Encode(watchedEvent{Subject: subj, Event: data})
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", subject, err)
	}
	<-cmd.Context().Done()
	return nil
}
