package repositories

// DeskhiveDbRepository groups all the repository methods on the deskhive
// database. Methods are spread over the *_repository.go files of this
// package.
type DeskhiveDbRepository struct{}
