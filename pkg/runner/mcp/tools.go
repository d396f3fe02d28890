package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerDayScheduleTool(srv, svc)
	registerMoveTaskTool(srv, svc)
	registerCompleteTaskTool(srv, svc)
	registerReopenTaskTool(srv, svc)
	registerListTasksTool(srv, svc)
	registerFocusQueueTool(srv, svc)
	registerMatrixTool(srv, svc)
}

func registerDayScheduleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_day_schedule",
		mcp.WithDescription("Lay out the schedule for one day: tasks packed into side-by-side columns over the background time blocks."),
		mcp.WithString("date",
			mcp.Description("ISO date (YYYY-MM-DD). Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date string `json:"date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.Day(ctx, args.Date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMoveTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_task",
		mcp.WithDescription("Move a scheduled task to a new start slot and return the re-laid-out day."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to move."),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("New wall-clock start, HH:mm."),
		),
		mcp.WithString("date",
			mcp.Description("ISO date (YYYY-MM-DD). Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID    string `json:"id"`
			Start string `json:"start"`
			Date  string `json:"date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.MoveTask(ctx, args.ID, args.Start, args.Date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCompleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"complete_task",
		mcp.WithDescription("Mark a task as completed at the source."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to complete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := svc.CompleteTask(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"id": id, "status": "completed"})
	})
}

func registerReopenTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reopen_task",
		mcp.WithDescription("Reopen a previously completed task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to reopen."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := svc.ReopenTask(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"id": id, "status": "open"})
	})
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks from the source, sorted by priority then due date."),
		mcp.WithString("filter",
			mcp.Description(`Source-side filter expression, for example "today | overdue".`),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Filter string `json:"filter"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		tasks, err := svc.ListTasks(ctx, args.Filter)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count": len(tasks),
			"tasks": tasks,
		})
	})
}

func registerFocusQueueTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_focus_queue",
		mcp.WithDescription("Build the ordered focus queue from the saved filter, the current ranking, and the backlog."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		queue, err := svc.FocusQueue(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count": len(queue),
			"queue": queue,
		})
	})
}

func registerMatrixTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_matrix",
		mcp.WithDescription("Classify open tasks into urgency/importance quadrants and refresh the saved ranking."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		quadrants, err := svc.Matrix(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(quadrants)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
