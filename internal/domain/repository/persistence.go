package repository

// PersistenceAdapter agrupa los tres puertos que cualquier medio de almacenamiento
// (memoria, clave-valor o tabla remota) debe implementar. El núcleo no sabe cuál está activo.
type PersistenceAdapter interface {
	IncidentRepository
	UserRegistryRepository
	SessionRepository
	Close() error
}
