package editor

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Registry 管理内存中的编辑会话：会话 ID → Controller。
// 文档只活在会话里，闲置超过 TTL 即随会话一起销毁，没有持久层。
type Registry struct {
	ttl   time.Duration
	store *gocache.Cache
}

// NewRegistry 构造会话注册表。
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:   ttl,
		store: gocache.New(ttl, ttl/4),
	}
}

// Create 新建一个会话并播种默认文档。
func (r *Registry) Create() (string, *Controller) {
	id := uuid.NewString()
	ctrl := NewController()
	r.store.Set(id, ctrl, r.ttl)
	return id, ctrl
}

// Get 返回指定会话的控制器；命中时顺带续期，保证活跃会话不中途过期。
func (r *Registry) Get(id string) (*Controller, bool) {
	value, ok := r.store.Get(id)
	if !ok {
		return nil, false
	}
	ctrl, ok := value.(*Controller)
	if !ok {
		return nil, false
	}
	r.store.Set(id, ctrl, r.ttl)
	return ctrl, true
}

// Delete 立即销毁会话。
func (r *Registry) Delete(id string) {
	r.store.Delete(id)
}

// Len 返回当前存活的会话数量（含尚未清理的过期项）。
func (r *Registry) Len() int {
	return r.store.ItemCount()
}
