package constants

const QueueTransactionCreated = "transaction.created"
