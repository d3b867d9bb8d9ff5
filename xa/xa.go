// Package xa содержит словарь X/Open XA, общий для координатора и ядра присоединения ресурсов: флаги,
// идентификаторы ветвей транзакций и контракт менеджера ресурсов.
package xa

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Flags - флаги XA для Start и End.
type Flags uint32

const (
	TMNOFLAGS    Flags = 0x00000000
	TMJOIN       Flags = 0x00200000
	TMENDRSCAN   Flags = 0x00800000
	TMSTARTRSCAN Flags = 0x01000000
	TMSUSPEND    Flags = 0x02000000
	TMSUCCESS    Flags = 0x04000000
	TMRESUME     Flags = 0x08000000
	TMFAIL       Flags = 0x20000000
	TMONEPHASE   Flags = 0x40000000
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{TMJOIN, "TMJOIN"},
	{TMENDRSCAN, "TMENDRSCAN"},
	{TMSTARTRSCAN, "TMSTARTRSCAN"},
	{TMSUSPEND, "TMSUSPEND"},
	{TMSUCCESS, "TMSUCCESS"},
	{TMRESUME, "TMRESUME"},
	{TMFAIL, "TMFAIL"},
	{TMONEPHASE, "TMONEPHASE"},
}

func (f Flags) String() string {
	if f == TMNOFLAGS {
		return "TMNOFLAGS"
	}
	var names []string
	rest := f
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%08x", uint32(rest)))
	}
	return strings.Join(names, "|")
}

// MaxBranchQualifierSize - предельный размер квалификатора ветви в байтах.
const MaxBranchQualifierSize = 64

// DefaultFormatID - идентификатор формата по умолчанию.
const DefaultFormatID int32 = 0x51584100

// GlobalID - идентификатор распределенной транзакции. Неизменяем и сравним.
type GlobalID [16]byte

// NewGlobalID возвращает новый случайный GlobalID.
func NewGlobalID() (GlobalID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return GlobalID{}, fmt.Errorf("generate global id: %w", err)
	}
	return GlobalID(u), nil
}

func (g GlobalID) String() string {
	return uuid.UUID(g).String()
}

func (g GlobalID) IsZero() bool {
	return g == GlobalID{}
}

// Xid - идентификатор ветви транзакции: глобальная транзакция и квалификатор ветви.
// Пустой квалификатор обозначает саму транзакцию.
type Xid struct {
	FormatID        int32
	GlobalID        GlobalID
	BranchQualifier string
}

// WithBranch возвращает копию x с квалификатором ветви qualifier.
func (x Xid) WithBranch(qualifier string) Xid {
	x.BranchQualifier = qualifier
	return x
}

func (x Xid) GlobalTransactionID() []byte {
	return x.GlobalID[:]
}

func (x Xid) BranchQualifierBytes() []byte {
	return []byte(x.BranchQualifier)
}

func (x Xid) String() string {
	return fmt.Sprintf("%x:%s:%s", x.FormatID, hex.EncodeToString(x.GlobalID[:]), x.BranchQualifier)
}

// PrepareResult - успешный результат Resource.Prepare.
type PrepareResult int

const (
	PrepareOK       PrepareResult = 0
	PrepareReadOnly PrepareResult = 3
)

// Resource - соединение с менеджером ресурсов, управляемое по протоколу XA.
// Реализации используются как ключи map и должны быть сравнимы.
type Resource interface {
	Start(ctx context.Context, xid Xid, flags Flags) error
	End(ctx context.Context, xid Xid, flags Flags) error
	Prepare(ctx context.Context, xid Xid) (PrepareResult, error)
	Commit(ctx context.Context, xid Xid, onePhase bool) error
	Rollback(ctx context.Context, xid Xid) error
	Forget(ctx context.Context, xid Xid) error
}

// ManagerIdentity реализуют ресурсы, способные определить подключение другого ресурса к тому же менеджеру.
type ManagerIdentity interface {
	IsSameRM(other Resource) bool
}
