package repoargs

type RepositoryName string

const (
	ProfileRepoName            RepositoryName = "profile"
	WalletRepoName             RepositoryName = "wallet"
	CreditsTransactionRepoName RepositoryName = "credits_transaction"
	PackageRepoName            RepositoryName = "package"
	BookingRepoName            RepositoryName = "booking"
	PayoutRepoName             RepositoryName = "payout"
	DeliveryRepoName           RepositoryName = "delivery"
	ReviewRepoName             RepositoryName = "review"
	MessageRepoName            RepositoryName = "message"
)
