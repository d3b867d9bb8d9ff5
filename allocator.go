package qxa

import (
	"strconv"
	"unicode/utf8"

	"github.com/qbixus/qxa-go/xa"
)

// SameManagerFunc сообщает, подключены ли два ресурса к одному менеджеру ресурсов.
type SameManagerFunc func(a, b xa.Resource) bool

// DefaultSameManager запрашивает у a идентичность менеджера ресурсов, если a реализует [xa.ManagerIdentity], иначе
// считает каждый ресурс отдельным менеджером.
func DefaultSameManager(a, b xa.Resource) bool {
	if id, ok := a.(xa.ManagerIdentity); ok {
		return id.IsSameRM(b)
	}
	return a == b
}

// ---

// branchAllocator выделяет по одной ветви на каждый менеджер ресурсов транзакции.
type branchAllocator struct {
	base       xa.Xid
	serverName string
	same       SameManagerFunc

	managers []xa.Resource // Первый ресурс каждого менеджера
	branches []xa.Xid      // Параллельно managers
}

func newBranchAllocator(base xa.Xid, serverName string, same SameManagerFunc) branchAllocator {
	return branchAllocator{base: base, serverName: serverName, same: same}
}

// lookup возвращает ветвь уже известного менеджера, к которому относится res.
func (b *branchAllocator) lookup(res xa.Resource) (xa.Xid, bool) {
	for i, m := range b.managers {
		if b.same(res, m) {
			return b.branches[i], true
		}
	}
	return xa.Xid{}, false
}

// next вычисляет ветвь для нового менеджера, не запоминая ее.
// Имя сервера усекается по границе символа так, чтобы квалификатор уложился в [xa.MaxBranchQualifierSize].
func (b *branchAllocator) next() xa.Xid {
	seq := strconv.Itoa(len(b.managers))
	name := b.serverName
	if limit := xa.MaxBranchQualifierSize - len(seq) - 1; len(name) > limit {
		for limit > 0 && !utf8.RuneStart(name[limit]) {
			limit--
		}
		name = name[:limit]
	}
	return b.base.WithBranch(name + "," + seq)
}

// record запоминает res как первый ресурс менеджера, владеющего xid.
func (b *branchAllocator) record(res xa.Resource, xid xa.Xid) {
	b.managers = append(b.managers, res)
	b.branches = append(b.branches, xid)
}
