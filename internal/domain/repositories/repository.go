package repositories

// Backend é uma implementação de armazenamento que atende aos dois repositórios
type Backend interface {
	SubmissionRepository
	PurchaseRepository
	Name() string
}
