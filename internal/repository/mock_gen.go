// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./asset.go -destination=../mocks/mock_asset_repository.go -package=mocks AssetRepositoryIface
//go:generate mockgen -source=./workorder.go -destination=../mocks/mock_workorder_repository.go -package=mocks WorkOrderRepositoryIface
//go:generate mockgen -source=./activity_log.go -destination=../mocks/mock_activity_log_repository.go -package=mocks ActivityLogRepositoryIface
