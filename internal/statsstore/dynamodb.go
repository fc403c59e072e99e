// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package statsstore

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

// DynamoDBStore is grounded directly on server/cloud/db.DynamoDBDatabase:
// one table, namespaced by stage the same way mk48 namespaces
// "mk48-<stage>-scores".
type DynamoDBStore struct {
	svc     *dynamodb.DynamoDB
	db      *dynamo.DB
	results dynamo.Table
}

// NewDynamoDBStore opens (without creating) the results table for stage.
func NewDynamoDBStore(sess *session.Session, stage string) (*DynamoDBStore, error) {
	store := &DynamoDBStore{svc: dynamodb.New(sess)}
	store.db = dynamo.NewFromIface(store.svc)
	store.results = store.db.Table("halite-" + stage + "-results")
	return store, nil
}

// PutResult overwrites any existing row for the (game_id, player_id) pair
// unconditionally; unlike mk48's high-score table, a finished game's result
// never needs a conditional write, since it is never revised upward.
func (store *DynamoDBStore) PutResult(result GameResult) error {
	return store.results.Put(result).Run()
}

func (store *DynamoDBStore) ResultsByGame(gameID string) (results []GameResult, err error) {
	query := store.results.Get("game_id", gameID).Iter()
	for {
		var result GameResult
		if !query.Next(&result) {
			err = query.Err()
			return
		}
		results = append(results, result)
	}
}

func (store *DynamoDBStore) ResultsByPlayer(playerID int) (results []GameResult, err error) {
	query := store.results.Scan().Filter("'player_id' = ?", playerID).Iter()
	for {
		var result GameResult
		if !query.Next(&result) {
			err = query.Err()
			return
		}
		results = append(results, result)
	}
}
