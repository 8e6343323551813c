package models

import (
	"strings"

	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
)

// TableName is one of the tables of a node database known to the inspector.
type TableName string

// Node tables.
const (
	TableNodeAttachments          TableName = "NODE_ATTACHMENTS"
	TableNodeAttachmentsContracts TableName = "NODE_ATTACHMENTS_CONTRACTS"
	TableNodeCheckpoints          TableName = "NODE_CHECKPOINTS"
	TableNodeContractUpgrades     TableName = "NODE_CONTRACT_UPGRADES"
	TableNodeIdentities           TableName = "NODE_IDENTITIES"
	TableNodeInfos                TableName = "NODE_INFOS"
	TableNodeInfoHosts            TableName = "NODE_INFO_HOSTS"
	TableNodeInfoPartyCert        TableName = "NODE_INFO_PARTY_CERT"
	TableNodeLinkNodeInfoParty    TableName = "NODE_LINK_NODEINFO_PARTY"
	TableNodeMessageIDs           TableName = "NODE_MESSAGE_IDS"
	TableNodeMessageRetry         TableName = "NODE_MESSAGE_RETRY"
	TableNodeNamedIdentities      TableName = "NODE_NAMED_IDENTITIES"
	TableNodeOurKeyPairs          TableName = "NODE_OUR_KEY_PAIRS"
	TableNodeProperties           TableName = "NODE_PROPERTIES"
	TableNodeScheduledStates      TableName = "NODE_SCHEDULED_STATES"
	TableNodeTransactions         TableName = "NODE_TRANSACTIONS"
	TableNodeTransactionMappings  TableName = "NODE_TRANSACTION_MAPPINGS"
)

// Vault tables.
const (
	TableVaultFungibleStates      TableName = "VAULT_FUNGIBLE_STATES"
	TableVaultFungibleStatesParts TableName = "VAULT_FUNGIBLE_STATES_PARTS"
	TableVaultLinearStates        TableName = "VAULT_LINEAR_STATES"
	TableVaultLinearStatesParts   TableName = "VAULT_LINEAR_STATES_PARTS"
	TableVaultStates              TableName = "VAULT_STATES"
	TableVaultTransactionNotes    TableName = "VAULT_TRANSACTION_NOTES"
	TableStateParty               TableName = "STATE_PARTY"
)

// catalog is the fixed, ordered list of tables. Snapshots walk it in this order.
var catalog = []TableName{
	TableNodeAttachments,
	TableNodeAttachmentsContracts,
	TableNodeCheckpoints,
	TableNodeContractUpgrades,
	TableNodeIdentities,
	TableNodeInfos,
	TableNodeInfoHosts,
	TableNodeInfoPartyCert,
	TableNodeLinkNodeInfoParty,
	TableNodeMessageIDs,
	TableNodeMessageRetry,
	TableNodeNamedIdentities,
	TableNodeOurKeyPairs,
	TableNodeProperties,
	TableNodeScheduledStates,
	TableNodeTransactions,
	TableNodeTransactionMappings,
	TableVaultFungibleStates,
	TableVaultFungibleStatesParts,
	TableVaultLinearStates,
	TableVaultLinearStatesParts,
	TableVaultStates,
	TableVaultTransactionNotes,
	TableStateParty,
}

// Tables returns a copy of the table catalog in its fixed order.
func Tables() []TableName {
	tables := make([]TableName, len(catalog))
	copy(tables, catalog)
	return tables
}

// ParseTableName maps s (any case) to a catalog entry.
func ParseTableName(s string) (TableName, error) {
	name := TableName(strings.ToUpper(strings.TrimSpace(s)))
	if !name.Valid() {
		return "", srvErrors.NewUnknownTableError(s)
	}
	return name, nil
}

// Valid reports whether t belongs to the catalog.
func (t TableName) Valid() bool {
	for _, name := range catalog {
		if name == t {
			return true
		}
	}
	return false
}

func (t TableName) String() string {
	return string(t)
}

// Columns referenced by the vault lookups.
const (
	ColumnTransactionID          = "TRANSACTION_ID"
	ColumnOutputIndex            = "OUTPUT_INDEX"
	ColumnLinearID               = "UUID"
	ColumnExternalID             = "EXTERNAL_ID"
	ColumnIssuerName             = "ISSUER_NAME"
	ColumnConsumedTimestamp      = "CONSUMED_TIMESTAMP"
	ColumnContractStateClassName = "CONTRACT_STATE_CLASS_NAME"
	ColumnStateStatus            = "STATE_STATUS"
	ColumnInsertionDate          = "INSERTION_DATE"
	ColumnInsertionTime          = "INSERTION_TIME"
	ColumnCheckpointID           = "CHECKPOINT_ID"
	ColumnNote                   = "NOTE"
)
