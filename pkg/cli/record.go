package cli

import (
	"fmt"

	"github.com/njallactl/njallactl/pkg/njalla"
	"github.com/spf13/cobra"
	"k8s.io/utils/ptr"
)

const defaultTTL = 3600

func newRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "dns record operations",
	}

	cmd.AddCommand(
		newRecordListCmd(a),
		newRecordAddCmd(a),
		newRecordEditCmd(a),
		newRecordRemoveCmd(a),
	)

	return cmd
}

func newRecordListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <domain>",
		Short: "list dns records for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			records, err := client.ListRecords(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, records)
		},
	}
}

func newRecordAddCmd(a *app) *cobra.Command {
	var (
		record   njalla.NewRecord
		priority uint32
	)

	cmd := &cobra.Command{
		Use:   "add <domain>",
		Short: "add a dns record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePositive("ttl", record.TTL); err != nil {
				return err
			}
			if cmd.Flags().Changed("priority") {
				record.Priority = ptr.To(priority)
			}

			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			created, err := client.AddRecord(cmd.Context(), args[0], record)
			if err != nil {
				return err
			}
			return a.print(cmd, created)
		},
	}

	cmd.Flags().StringVarP(&record.Name, "name", "n", "", "Record name (required)")
	cmd.Flags().StringVarP(&record.Type, "type", "t", "", "Record type, e.g. A, AAAA, MX (required)")
	cmd.Flags().StringVarP(&record.Content, "content", "c", "", "Record content (required)")
	cmd.Flags().Uint32Var(&record.TTL, "ttl", defaultTTL, "Time to live in seconds")
	cmd.Flags().Uint32VarP(&priority, "priority", "p", 0, "Record priority (MX, SRV)")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func newRecordEditCmd(a *app) *cobra.Command {
	var (
		name, recordType, content string
		ttl, priority             uint32
	)

	cmd := &cobra.Command{
		Use:   "edit <domain> <id>",
		Short: "edit a dns record",
		Long: `Edit a DNS record. Only the given flags change; every other field keeps
the value of the existing record.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			patch := njalla.RecordPatch{}
			if flags.Changed("name") {
				patch.Name = ptr.To(name)
			}
			if flags.Changed("type") {
				patch.Type = ptr.To(recordType)
			}
			if flags.Changed("content") {
				patch.Content = ptr.To(content)
			}
			if flags.Changed("ttl") {
				if err := requirePositive("ttl", ttl); err != nil {
					return err
				}
				patch.TTL = ptr.To(ttl)
			}
			if flags.Changed("priority") {
				patch.Priority = ptr.To(priority)
			}

			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			if _, err := client.EditRecordByID(cmd.Context(), args[0], args[1], patch); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "record updated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New record name")
	cmd.Flags().StringVarP(&recordType, "type", "t", "", "New record type")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New record content")
	cmd.Flags().Uint32Var(&ttl, "ttl", 0, "New time to live in seconds")
	cmd.Flags().Uint32VarP(&priority, "priority", "p", 0, "New record priority")

	return cmd
}

func newRecordRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <domain> <id>",
		Short: "remove a dns record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.connect(cmd)
			if err != nil {
				return err
			}

			if err := client.RemoveRecord(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "record %s removed\n", args[1])
			return nil
		},
	}
}
