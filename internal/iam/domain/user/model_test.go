package user

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Email(t *testing.T) {
	for _, account := range []string{
		"a@x.com",
		"A.B+tag@Example.CO.uk",
		"13800138000@qq.com",
		"user@host.name.with.dots",
	} {
		assert.Equal(t, KindEmail, Classify(account), account)
	}
}

func TestClassify_Phone(t *testing.T) {
	for _, account := range []string{"13800138000", "19999999999", "10000000000"} {
		assert.Equal(t, KindPhone, Classify(account), account)
	}
}

func TestClassify_AllDigitsOutsidePhonePatternIsUsername(t *testing.T) {
	for _, account := range []string{
		"1380013800",   // 10 dígitos
		"138001380001", // 12 dígitos
		"23800138000",  // não começa com 1
		"08001380000",
		"0",
	} {
		assert.Equal(t, KindUsername, Classify(account), account)
	}
}

func TestClassify_Username(t *testing.T) {
	for _, account := range []string{"alice", "alice@localhost", "@x.com", "a@@x.com", "+8613800138000", ""} {
		assert.Equal(t, KindUsername, Classify(account), account)
	}
}

func TestClassify_EveryElevenDigitStringStartingWithOne(t *testing.T) {
	for i := 0; i < 1000; i++ {
		account := fmt.Sprintf("1%010d", i*9999991)
		assert.Equal(t, KindPhone, Classify(account), account)
	}
}

func TestAccountKind_String(t *testing.T) {
	assert.Equal(t, "email", KindEmail.String())
	assert.Equal(t, "phone", KindPhone.String())
	assert.Equal(t, "username", KindUsername.String())
}
