package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/paperless/tasks"
)

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Inspect server-side tasks",
	}
	cmd.AddCommand(newTasksListCmd(a), newTasksGetCmd(a))
	return cmd
}

var taskHeader = []string{"TASK ID", "FILE", "STATUS", "CREATED", "DOCUMENT", "RESULT"}

func taskRows(list []tasks.Task) [][]string {
	rows := make([][]string, len(list))
	for i, t := range list {
		doc := "-"
		if id, ok := t.DocumentID(); ok {
			doc = strconv.Itoa(id)
		}
		rows[i] = []string{
			t.TaskID.String(),
			optional(t.FileName),
			string(t.Status),
			t.Created.Format(time.DateTime),
			doc,
			t.ResultMessage(),
		}
	}
	return rows
}

func newTasksListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.infra.Client.Tasks.List(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(list, taskHeader, taskRows(list))
		},
	}
}

func newTasksGetCmd(a *app) *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "get <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}

			var task *tasks.Task
			if wait {
				task, err = a.infra.Client.Poller().Await(cmd.Context(), id)
			} else {
				task, err = a.infra.Client.Tasks.Get(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("task %s not found", id)
			}
			return a.render(task, taskHeader, taskRows([]tasks.Task{*task}))
		},
	}
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait until the task completes")
	return cmd
}
