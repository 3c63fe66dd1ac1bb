package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/internal/db"
	"backend/internal/jobs"
	"backend/internal/shopify"
	"backend/internal/store"
	syncsvc "backend/internal/sync"
	"backend/internal/syncconfig"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type initialSyncRequest struct {
	SyncSessionID string `json:"syncSessionId"`
	DaysBack      int    `json:"daysBack"`
}

type incrementalSyncRequest struct {
	Since string `json:"since"` // RFC3339, optional
}

type sessionSyncRequest struct {
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`
}

// Sync routes the sync API. All routes are POST and JWT-authorized:
//
//	POST /sync/initial
//	POST /sync/incremental
//	POST /sync/sessions
func Sync(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	org, err := orgID(req)
	if err != nil {
		return errResp(401, "unauthorized")
	}

	if req.RequestContext.HTTP.Method != "POST" {
		return errResp(405, "method not allowed")
	}

	orch, err := buildOrchestrator(ctx)
	if err != nil {
		fmt.Printf("sync-handler: build orchestrator: %v\n", err)
		return errResp(500, "failed to init sync")
	}

	switch req.RequestContext.HTTP.Path {
	case "/sync/initial":
		return handleInitial(ctx, orch, org, req.Body)
	case "/sync/incremental":
		return handleIncremental(ctx, orch, org, req.Body)
	case "/sync/sessions":
		return handleSessions(ctx, orch, org, req.Body)
	default:
		return errResp(404, "not found")
	}
}

func handleInitial(ctx context.Context, orch *syncsvc.Orchestrator, org, body string) (events.APIGatewayV2HTTPResponse, error) {
	var in initialSyncRequest
	if strings.TrimSpace(body) != "" {
		if err := json.Unmarshal([]byte(body), &in); err != nil {
			return errResp(400, "invalid json body")
		}
	}

	res, err := orch.Initial(ctx, org, syncsvc.InitialOptions{
		SyncSessionID: in.SyncSessionID,
		DaysBack:      in.DaysBack,
	})
	if err != nil {
		if errors.Is(err, store.ErrNoActiveStore) {
			return errResp(404, "no active store for organization")
		}
		fmt.Printf("sync-handler: initial sync for org %s: %v\n", org, err)
		return errResp(500, "initial sync failed")
	}
	return jsonResp(200, res)
}

func handleIncremental(ctx context.Context, orch *syncsvc.Orchestrator, org, body string) (events.APIGatewayV2HTTPResponse, error) {
	var in incrementalSyncRequest
	if strings.TrimSpace(body) != "" {
		if err := json.Unmarshal([]byte(body), &in); err != nil {
			return errResp(400, "invalid json body")
		}
	}

	var since time.Time
	if strings.TrimSpace(in.Since) != "" {
		t, err := time.Parse(time.RFC3339, in.Since)
		if err != nil {
			return errResp(400, "since must be RFC3339")
		}
		since = t
	}

	res, err := orch.Incremental(ctx, org, since)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveStore) {
			return errResp(404, "no active store for organization")
		}
		fmt.Printf("sync-handler: incremental sync for org %s: %v\n", org, err)
		return errResp(500, "incremental sync failed")
	}
	return jsonResp(200, res)
}

func handleSessions(ctx context.Context, orch *syncsvc.Orchestrator, org, body string) (events.APIGatewayV2HTTPResponse, error) {
	var in sessionSyncRequest
	if strings.TrimSpace(body) != "" {
		if err := json.Unmarshal([]byte(body), &in); err != nil {
			return errResp(400, "invalid json body")
		}
	}

	startDate, endDate := in.StartDate, in.EndDate
	if startDate == "" || endDate == "" {
		startDate, endDate = syncsvc.SessionRangeDefault(30)
	}
	if !validDate(startDate) || !validDate(endDate) {
		return errResp(400, "startDate and endDate must be YYYY-MM-DD")
	}

	res, err := orch.SyncSessions(ctx, org, startDate, endDate)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveStore) {
			return errResp(404, "no active store for organization")
		}
		fmt.Printf("sync-handler: session sync for org %s: %v\n", org, err)
		return errResp(500, "session sync failed")
	}
	return jsonResp(200, res)
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// buildOrchestrator wires the production collaborators. Tests construct
// the orchestrator directly with fakes instead.
func buildOrchestrator(ctx context.Context) (*syncsvc.Orchestrator, error) {
	ddb, err := db.NewDynamoClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("init dynamodb: %w", err)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	queue := jobs.NewQueue(sns.NewFromConfig(awsCfg), jobs.JobsTopicArn())

	factory := func(creds store.Credentials) syncsvc.FetchClient {
		return shopify.NewClient(creds.ShopDomain, creds.AccessToken, creds.APIVersion)
	}

	return syncsvc.New(
		store.NewResolver(ddb),
		factory,
		db.NewStore(ddb),
		queue,
		syncconfig.Load(ctx),
	), nil
}
