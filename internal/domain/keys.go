package domain

// KeyPrefix namespaces all keys written by this service.
const KeyPrefix = "cinevec:"
