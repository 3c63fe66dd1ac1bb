package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

func jsonResp(status int, v any) (events.APIGatewayV2HTTPResponse, error) {
	b, _ := json.Marshal(v)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers: map[string]string{
			"content-type":                "application/json",
			"access-control-allow-origin": "*",
		},
		Body: string(b),
	}, nil
}

func errResp(status int, msg string) (events.APIGatewayV2HTTPResponse, error) {
	return jsonResp(status, map[string]any{
		"error": msg,
	})
}

// orgID comes from the JWT authorizer claims. Every sync route is scoped
// to exactly one organization.
func orgID(req events.APIGatewayV2HTTPRequest) (string, error) {
	auth := req.RequestContext.Authorizer
	if auth == nil || auth.JWT == nil || auth.JWT.Claims == nil {
		return "", errors.New("missing authorizer claims")
	}
	claims := auth.JWT.Claims
	org := strings.TrimSpace(claims["custom:org_id"])
	if org == "" {
		org = strings.TrimSpace(claims["sub"])
	}
	if org == "" {
		return "", fmt.Errorf("missing org claim")
	}
	return org, nil
}
