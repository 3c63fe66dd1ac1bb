package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"backend/internal/db"
	"backend/internal/security"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrNoActiveStore aborts a sync before any fetching starts; there is no
// partial mode without credentials.
var ErrNoActiveStore = errors.New("no active store for organization")

// Credentials is the resolved, decrypted store identity a sync runs with.
type Credentials struct {
	ID             string
	OrganizationID string
	ShopDomain     string
	AccessToken    string
	APIVersion     string
	LastSyncAt     string // RFC3339, empty if never synced
}

// storeItem mirrors the DynamoDB stores-table structure.
// PK = STORE#<storeID>, SK = META; GSI1PK = ORG#<orgID> for org lookup.
type storeItem struct {
	PK             string `dynamodbav:"PK"`
	SK             string `dynamodbav:"SK"`
	GSI1PK         string `dynamodbav:"GSI1PK"`
	OrganizationID string `dynamodbav:"OrganizationId"`
	Shop           string `dynamodbav:"Shop"`
	AccessTokenEnc string `dynamodbav:"AccessTokenEnc"`
	ApiVersion     string `dynamodbav:"ApiVersion"`
	Active         bool   `dynamodbav:"Active"`
	LastSyncAt     string `dynamodbav:"LastSyncAt,omitempty"`
}

type Resolver struct {
	ddb *dynamodb.Client
}

func NewResolver(ddb *dynamodb.Client) *Resolver {
	return &Resolver{ddb: ddb}
}

// GetActiveStore resolves the organization's single active store and
// decrypts its access token. Exactly one active store per organization is
// an invariant owned by the connect flow; if several exist the first
// active item wins.
func (r *Resolver) GetActiveStore(ctx context.Context, orgID string) (*Credentials, error) {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" {
		return nil, errors.New("missing organization id")
	}

	tbl := strings.TrimSpace(db.StoresTableName())
	if tbl == "" {
		return nil, errors.New("STORES_TABLE not configured")
	}

	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(tbl),
		IndexName:              aws.String("GSI1"),
		KeyConditionExpression: aws.String("GSI1PK = :org"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":org": &types.AttributeValueMemberS{Value: "ORG#" + orgID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}

	var items []storeItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}

	for _, it := range items {
		if !it.Active {
			continue
		}

		token, err := decryptToken(it.AccessTokenEnc)
		if err != nil {
			return nil, fmt.Errorf("store %s: %w", it.Shop, err)
		}

		apiVersion := strings.TrimSpace(it.ApiVersion)
		if apiVersion == "" {
			apiVersion = "2024-10"
		}

		return &Credentials{
			ID:             strings.TrimPrefix(it.PK, "STORE#"),
			OrganizationID: orgID,
			ShopDomain:     it.Shop,
			AccessToken:    token,
			APIVersion:     apiVersion,
			LastSyncAt:     it.LastSyncAt,
		}, nil
	}

	return nil, ErrNoActiveStore
}

func decryptToken(enc string) (string, error) {
	enc = strings.TrimSpace(enc)
	if enc == "" {
		return "", errors.New("no AccessTokenEnc on record")
	}

	keyB64 := os.Getenv("TOKEN_ENC_KEY_B64")
	if keyB64 == "" {
		return "", errors.New("TOKEN_ENC_KEY_B64 not set")
	}

	key, err := security.LoadKeyFromBase64(keyB64)
	if err != nil {
		return "", fmt.Errorf("invalid TOKEN_ENC_KEY_B64: %w", err)
	}

	token, err := security.DecryptAESGCM(key, enc)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}

	return token, nil
}
