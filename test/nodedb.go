// Package test holds fixtures shared by the ginkgo suites.
package test

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

// nodeSchema creates every catalog table with the columns a node uses.
var nodeSchema = []string{
	`CREATE TABLE NODE_ATTACHMENTS (ATT_ID VARCHAR PRIMARY KEY, CONTENT BLOB, FILENAME VARCHAR, INSERTION_DATE TIMESTAMP, UPLOADER VARCHAR, VERSION INTEGER)`,
	`CREATE TABLE NODE_ATTACHMENTS_CONTRACTS (ATT_ID VARCHAR, CONTRACT_CLASS_NAME VARCHAR)`,
	`CREATE TABLE NODE_CHECKPOINTS (CHECKPOINT_ID VARCHAR PRIMARY KEY, CHECKPOINT_VALUE BLOB)`,
	`CREATE TABLE NODE_CONTRACT_UPGRADES (STATE_REF VARCHAR PRIMARY KEY, CONTRACT_CLASS_NAME VARCHAR)`,
	`CREATE TABLE NODE_IDENTITIES (PK_HASH VARCHAR PRIMARY KEY, IDENTITY_VALUE BLOB)`,
	`CREATE TABLE NODE_INFOS (NODE_INFO_ID INTEGER PRIMARY KEY, NODE_INFO_HASH VARCHAR, PLATFORM_VERSION INTEGER, SERIAL BIGINT)`,
	`CREATE TABLE NODE_INFO_HOSTS (HOSTS_ID INTEGER PRIMARY KEY, HOST_NAME VARCHAR, PORT INTEGER, NODE_INFO_ID INTEGER)`,
	`CREATE TABLE NODE_INFO_PARTY_CERT (PARTY_NAME VARCHAR PRIMARY KEY, ISMAIN BOOLEAN, OWNING_KEY_HASH VARCHAR, PARTY_CERT_BINARY BLOB)`,
	`CREATE TABLE NODE_LINK_NODEINFO_PARTY (NODE_INFO_ID INTEGER, PARTY_NAME VARCHAR)`,
	`CREATE TABLE NODE_MESSAGE_IDS (MESSAGE_ID VARCHAR PRIMARY KEY, INSERTION_TIME TIMESTAMP, SENDER VARCHAR, SEQUENCE_NUMBER BIGINT)`,
	`CREATE TABLE NODE_MESSAGE_RETRY (MESSAGE_ID BIGINT PRIMARY KEY, MESSAGE BLOB, RECIPIENTS BLOB)`,
	`CREATE TABLE NODE_NAMED_IDENTITIES (NAME VARCHAR PRIMARY KEY, PK_HASH VARCHAR)`,
	`CREATE TABLE NODE_OUR_KEY_PAIRS (PUBLIC_KEY_HASH VARCHAR PRIMARY KEY, PRIVATE_KEY BLOB, PUBLIC_KEY BLOB)`,
	`CREATE TABLE NODE_PROPERTIES (PROPERTY_KEY VARCHAR PRIMARY KEY, PROPERTY_VALUE VARCHAR)`,
	`CREATE TABLE NODE_SCHEDULED_STATES (OUTPUT_INDEX INTEGER, TRANSACTION_ID VARCHAR, SCHEDULED_AT TIMESTAMP)`,
	`CREATE TABLE NODE_TRANSACTIONS (TX_ID VARCHAR PRIMARY KEY, TRANSACTION_VALUE BLOB, STATE_MACHINE_RUN_ID VARCHAR)`,
	`CREATE TABLE NODE_TRANSACTION_MAPPINGS (TX_ID VARCHAR PRIMARY KEY, STATE_MACHINE_RUN_ID VARCHAR)`,
	`CREATE TABLE VAULT_FUNGIBLE_STATES (OUTPUT_INDEX INTEGER, TRANSACTION_ID VARCHAR, ISSUER_NAME VARCHAR, ISSUER_REF BLOB, OWNER_NAME VARCHAR, QUANTITY BIGINT)`,
	`CREATE TABLE VAULT_FUNGIBLE_STATES_PARTS (OUTPUT_INDEX INTEGER, TRANSACTION_ID VARCHAR, PARTICIPANTS VARCHAR)`,
	`CREATE TABLE VAULT_LINEAR_STATES (OUTPUT_INDEX INTEGER, TRANSACTION_ID VARCHAR, EXTERNAL_ID VARCHAR, UUID VARCHAR)`,
	`CREATE TABLE VAULT_LINEAR_STATES_PARTS (OUTPUT_INDEX INTEGER, TRANSACTION_ID VARCHAR, PARTICIPANTS VARCHAR)`,
	`CREATE TABLE VAULT_STATES (OUTPUT_INDEX INTEGER, TRANSACTION_ID VARCHAR, CONSUMED_TIMESTAMP TIMESTAMP, CONTRACT_STATE_CLASS_NAME VARCHAR, LOCK_ID VARCHAR, LOCK_TIMESTAMP TIMESTAMP, NOTARY_NAME VARCHAR, RECORDED_TIMESTAMP TIMESTAMP, STATE_STATUS INTEGER, RELEVANCY_STATUS INTEGER)`,
	`CREATE TABLE VAULT_TRANSACTION_NOTES (SEQ_NO INTEGER PRIMARY KEY, NOTE VARCHAR, TRANSACTION_ID VARCHAR)`,
	`CREATE TABLE STATE_PARTY (OUTPUT_INDEX INTEGER, TRANSACTION_ID VARCHAR, PUBLIC_KEY_HASH VARCHAR, X500_NAME VARCHAR)`,
}

// seed is a small, consistent data set: one issued cash state consumed by a
// second transaction, one linear state, one note.
var seed = []string{
	`INSERT INTO NODE_ATTACHMENTS VALUES ('some_id', NULL, 'contracts.jar', TIMESTAMP '2019-05-02 10:11:12.345', 'app', 1)`,
	`INSERT INTO NODE_ATTACHMENTS VALUES ('other_id', NULL, 'workflows.jar', TIMESTAMP '2019-05-02 10:15:00.000', 'rpc', 1)`,
	`INSERT INTO NODE_CHECKPOINTS VALUES ('c0ffee00-0000-0000-0000-000000000001', NULL)`,
	`INSERT INTO NODE_CHECKPOINTS VALUES ('c0ffee00-0000-0000-0000-000000000002', NULL)`,
	`INSERT INTO NODE_INFOS VALUES (1, 'A1B2C3', 4, 1)`,
	`INSERT INTO NODE_INFO_HOSTS VALUES (1, 'localhost', 10005, 1)`,
	`INSERT INTO NODE_MESSAGE_IDS VALUES ('m-1', TIMESTAMP '2019-05-02 10:20:00.000', 'O=PartyB, L=New York, C=US', 1)`,
	`INSERT INTO NODE_PROPERTIES VALUES ('flowsDrainingModeEnabled', 'false')`,
	`INSERT INTO NODE_TRANSACTIONS VALUES ('1', NULL, 'run-1')`,
	`INSERT INTO NODE_TRANSACTIONS VALUES ('3', NULL, 'run-3')`,
	`INSERT INTO VAULT_STATES VALUES (0, '1', TIMESTAMP '2019-05-02 11:00:00.000', 'net.corda.finance.contracts.asset.Cash$State', NULL, NULL, 'O=Notary, L=London, C=GB', TIMESTAMP '2019-05-02 10:30:00.000', 1, 0)`,
	`INSERT INTO VAULT_STATES VALUES (0, '3', NULL, 'net.corda.finance.contracts.asset.Cash$State', NULL, NULL, 'O=Notary, L=London, C=GB', TIMESTAMP '2019-05-02 11:00:00.000', 0, 0)`,
	`INSERT INTO VAULT_STATES VALUES (0, '4', NULL, 'com.example.state.IOUState', NULL, NULL, 'O=Notary, L=London, C=GB', TIMESTAMP '2019-05-02 11:05:00.000', 0, 0)`,
	`INSERT INTO VAULT_FUNGIBLE_STATES VALUES (0, '1', 'O=Bank, L=London, C=GB', NULL, 'O=PartyA, L=London, C=GB', 1000)`,
	`INSERT INTO VAULT_FUNGIBLE_STATES VALUES (0, '3', 'O=Bank, L=London, C=GB', NULL, 'O=PartyB, L=New York, C=US', 1000)`,
	`INSERT INTO VAULT_LINEAR_STATES VALUES (0, '4', 'iou-42', 'a7b6c5d4-0000-0000-0000-00000000abcd')`,
	`INSERT INTO VAULT_TRANSACTION_NOTES VALUES (1, 'first issuance', '1')`,
}

// NewNodeDatabase returns an in-memory duckdb database holding the node
// schema and, when seeded, the sample data set. Every connection of the
// returned pool sees the same database.
func NewNodeDatabase(ctx context.Context, seeded bool) (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, err
	}
	if err := Apply(ctx, db, nodeSchema...); err != nil {
		db.Close()
		return nil, err
	}
	if seeded {
		if err := Apply(ctx, db, seed...); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// NewNodeDatabaseFile writes the seeded node database to path and closes it,
// so it can be reopened through a jdbc:duckdb: url.
func NewNodeDatabaseFile(ctx context.Context, path string) error {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := Apply(ctx, db, nodeSchema...); err != nil {
		return err
	}
	return Apply(ctx, db, seed...)
}

// Apply runs statements in order.
func Apply(ctx context.Context, db *sql.DB, statements ...string) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply %q: %w", stmt, err)
		}
	}
	return nil
}
