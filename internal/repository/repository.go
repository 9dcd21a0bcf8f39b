package repository

import "time"

// Repositories 仓库集合
type Repositories struct {
	Result *ResultRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(resultTTL time.Duration) *Repositories {
	return &Repositories{
		Result: NewResultRepository(resultTTL),
	}
}
