package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/paperless/customfields"
)

func newFieldsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fields",
		Aliases: []string{"custom-fields"},
		Short:   "List and create custom fields",
	}
	cmd.AddCommand(newFieldsListCmd(a), newFieldsCreateCmd(a))
	return cmd
}

var fieldHeader = []string{"ID", "NAME", "TYPE", "OPTIONS"}

func fieldRows(fields []customfields.Field) [][]string {
	rows := make([][]string, len(fields))
	for i, f := range fields {
		options := "-"
		if f.ExtraData != nil {
			switch {
			case len(f.ExtraData.SelectOptions) > 0:
				options = strings.Join(f.ExtraData.SelectOptions, ", ")
			case f.ExtraData.DefaultCurrency != nil:
				options = *f.ExtraData.DefaultCurrency
			}
		}
		rows[i] = []string{strconv.Itoa(f.ID), f.Name, string(f.DataType), options}
	}
	return rows
}

func newFieldsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List custom fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := collect(a.infra.Client.CustomFields.List(cmd.Context()), 0)
			if err != nil {
				return err
			}
			return a.render(fields, fieldHeader, fieldRows(fields))
		},
	}
}

func newFieldsCreateCmd(a *app) *cobra.Command {
	var dataType string
	var options []string
	var currency string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a custom field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt := customfields.DataType(strings.ToLower(dataType))

			var creation customfields.Creation
			switch {
			case dt == customfields.Select:
				if len(options) == 0 {
					return fmt.Errorf("select fields require at least one --option")
				}
				creation = customfields.NewSelect(args[0], options...)
			case len(options) > 0:
				return fmt.Errorf("--option only applies to select fields")
			default:
				creation = customfields.Creation{Name: args[0], DataType: dt}
			}
			if currency != "" {
				if dt != customfields.Monetary {
					return fmt.Errorf("--currency only applies to monetary fields")
				}
				creation.ExtraData = &customfields.ExtraData{DefaultCurrency: &currency}
			}

			field, err := a.infra.Client.CustomFields.Create(cmd.Context(), creation)
			if err != nil {
				return err
			}
			return a.render(field, fieldHeader, fieldRows([]customfields.Field{*field}))
		},
	}
	cmd.Flags().StringVarP(&dataType, "type", "t", string(customfields.String), "Data type: string, url, date, boolean, integer, float, monetary, documentlink, select")
	cmd.Flags().StringArrayVar(&options, "option", nil, "Select option (repeatable, in order)")
	cmd.Flags().StringVar(&currency, "currency", "", "Default currency code for monetary fields")
	return cmd
}
