package automap

import (
	"fmt"
	"reflect"
)

// Test fixtures mirror the exact shape of automap-gen output for:
//
//	//automap:convert
//	type User struct {
//	    Account
//	    Name   string
//	    Age    int
//	    Email  string `automap:"target=mail"`
//	    Secret string `automap:"nomap"`
//	    Cache  string `automap:"nobean"`
//	}

type Account struct {
	Created string
}

type User struct {
	Account
	Name   string
	Age    int
	Email  string
	Secret string
	Cache  string
}

type Orphan struct {
	ID string
}

type User_MapConverter struct{}

func (User_MapConverter) Target() reflect.Type {
	return reflect.TypeOf((*User)(nil)).Elem()
}

func (c User_MapConverter) ToMap(entity any) (map[string]any, error) {
	if entity == nil {
		return map[string]any{}, nil
	}
	e, ok := entity.(*User)
	if !ok {
		v, okv := entity.(User)
		if !okv {
			return nil, NewTypeConversionError("entity", "User", fmt.Sprintf("%T", entity))
		}
		e = &v
	}
	if e == nil {
		return map[string]any{}, nil
	}
	m := make(map[string]any, 5)
	m["Name"] = e.Name
	m["Age"] = e.Age
	m["mail"] = e.Email
	m["Cache"] = e.Cache
	m["Created"] = e.Account.Created
	return m, nil
}

func (c User_MapConverter) ToBean(data map[string]any) (any, error) {
	bean := new(User)
	if len(data) == 0 {
		return bean, nil
	}
	if v, ok := data["Name"]; ok && v != nil {
		fv, ok := v.(string)
		if !ok {
			return nil, NewTypeConversionError("Name", "string", fmt.Sprintf("%T", v))
		}
		bean.Name = fv
	}
	if v, ok := data["Age"]; ok && v != nil {
		fv, ok := v.(int)
		if !ok {
			return nil, NewTypeConversionError("Age", "int", fmt.Sprintf("%T", v))
		}
		bean.Age = fv
	}
	if v, ok := data["Email"]; ok && v != nil {
		fv, ok := v.(string)
		if !ok {
			return nil, NewTypeConversionError("Email", "string", fmt.Sprintf("%T", v))
		}
		bean.Email = fv
	}
	if v, ok := data["Secret"]; ok && v != nil {
		fv, ok := v.(string)
		if !ok {
			return nil, NewTypeConversionError("Secret", "string", fmt.Sprintf("%T", v))
		}
		bean.Secret = fv
	}
	if v, ok := data["Created"]; ok && v != nil {
		fv, ok := v.(string)
		if !ok {
			return nil, NewTypeConversionError("Created", "string", fmt.Sprintf("%T", v))
		}
		bean.Account.Created = fv
	}
	return bean, nil
}

// altUserConverter targets the same type as User_MapConverter; used to verify
// that duplicate registration keeps the first-built instance.
type altUserConverter struct{}

func (altUserConverter) Target() reflect.Type {
	return reflect.TypeOf((*User)(nil)).Elem()
}

func (altUserConverter) ToMap(entity any) (map[string]any, error) {
	return map[string]any{"alt": true}, nil
}

func (altUserConverter) ToBean(data map[string]any) (any, error) {
	return new(User), nil
}

type Account_MapConverter struct{}

func (Account_MapConverter) Target() reflect.Type {
	return reflect.TypeOf((*Account)(nil)).Elem()
}

func (c Account_MapConverter) ToMap(entity any) (map[string]any, error) {
	if entity == nil {
		return map[string]any{}, nil
	}
	e, ok := entity.(*Account)
	if !ok {
		v, okv := entity.(Account)
		if !okv {
			return nil, NewTypeConversionError("entity", "Account", fmt.Sprintf("%T", entity))
		}
		e = &v
	}
	if e == nil {
		return map[string]any{}, nil
	}
	m := make(map[string]any, 1)
	m["Created"] = e.Created
	return m, nil
}

func (c Account_MapConverter) ToBean(data map[string]any) (any, error) {
	bean := new(Account)
	if len(data) == 0 {
		return bean, nil
	}
	if v, ok := data["Created"]; ok && v != nil {
		fv, ok := v.(string)
		if !ok {
			return nil, NewTypeConversionError("Created", "string", fmt.Sprintf("%T", v))
		}
		bean.Created = fv
	}
	return bean, nil
}

// nilTargetConverter exercises registry hygiene for broken converters.
type nilTargetConverter struct{}

func (nilTargetConverter) Target() reflect.Type               { return nil }
func (nilTargetConverter) ToMap(any) (map[string]any, error)  { return nil, nil }
func (nilTargetConverter) ToBean(map[string]any) (any, error) { return nil, nil }
