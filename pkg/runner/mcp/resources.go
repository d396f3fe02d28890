package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerBlocksResource(srv, svc)
	registerFocusResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerBlocksResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"agenda://blocks",
		"Time Blocks",
		mcp.WithResourceDescription("The configured background time blocks of the day."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		blocks, err := svc.TimeBlocks(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"blocks": blocks,
			"count":  len(blocks),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerFocusResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"agenda://focus",
		"Focus Queue",
		mcp.WithResourceDescription("The current ordered focus queue."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		queue, err := svc.FocusQueue(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"queue": queue,
			"count": len(queue),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"agenda://day/{date}",
		"Day Schedule",
		mcp.WithTemplateDescription("The packed schedule for one ISO date."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date, _ := request.Params.Arguments["date"].(string)
		if date == "" {
			return nil, fmt.Errorf("date is required")
		}

		dto, err := svc.Day(ctx, date)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"day": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
