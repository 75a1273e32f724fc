package cache

import "strings"

// ScopedKeyer namespaces every key so several deployments can share one
// Redis instance without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "mindmap:staging")
//	keyer.LayoutKey(hash, opts) // "mindmap:staging:layout:..."
type ScopedKeyer struct {
	inner     Keyer
	namespace string
}

// NewScopedKeyer returns a keyer that places inner's keys under namespace.
// A missing trailing ':' is added. An empty namespace returns inner unchanged.
func NewScopedKeyer(inner Keyer, namespace string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return inner
	}
	if !strings.HasSuffix(namespace, ":") {
		namespace += ":"
	}
	return &ScopedKeyer{inner: inner, namespace: namespace}
}

func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.namespace + k.inner.LayoutKey(graphHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.namespace + k.inner.ArtifactKey(layoutHash, opts)
}
