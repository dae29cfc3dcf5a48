// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package anylist

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/pantrysync/listsync/internal/domain/model"
)

// Field numbers of the user data response messages. Only the fields read
// here are listed; everything else is skipped.
const (
	// PBUserDataResponse
	userDataShoppingListsField protowire.Number = 1

	// PBShoppingListsResponse
	shoppingListsNewListsField protowire.Number = 1

	// ShoppingList
	listIdentifierField protowire.Number = 1
	listNameField       protowire.Number = 3
	listItemsField      protowire.Number = 4

	// ListItem
	itemIdentifierField protowire.Number = 1
	itemNameField       protowire.Number = 4
	itemQuantityField   protowire.Number = 5
	itemCheckedField    protowire.Number = 7
)

// ShoppingList is a list as returned by AnyList
type ShoppingList struct {
	ID    string
	Name  string
	Items []ListItem
}

// ListItem is a list entry. Nil fields were not set by the server.
type ListItem struct {
	ID       string
	Name     *string
	Quantity *string
	Checked  bool
}

// RawItem converts the entry to a domain raw item
func (i ListItem) RawItem() model.RawItem {
	return model.RawItem{Name: i.Name, Quantity: i.Quantity}
}

// DecodeUserData extracts the shopping lists from a PBUserDataResponse
func DecodeUserData(b []byte) ([]ShoppingList, error) {
	var lists []ShoppingList

	err := eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num != userDataShoppingListsField || typ != protowire.BytesType {
			return nil
		}
		return eachField(v, func(num protowire.Number, typ protowire.Type, v []byte) error {
			if num != shoppingListsNewListsField || typ != protowire.BytesType {
				return nil
			}
			list, err := decodeShoppingList(v)
			if err != nil {
				return err
			}
			lists = append(lists, list)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func decodeShoppingList(b []byte) (ShoppingList, error) {
	var list ShoppingList

	err := eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if typ != protowire.BytesType {
			return nil
		}
		switch num {
		case listIdentifierField:
			list.ID = string(v)
		case listNameField:
			list.Name = string(v)
		case listItemsField:
			item, err := decodeListItem(v)
			if err != nil {
				return fmt.Errorf("list %q: %w", list.Name, err)
			}
			list.Items = append(list.Items, item)
		}
		return nil
	})
	return list, err
}

func decodeListItem(b []byte) (ListItem, error) {
	var item ListItem

	err := eachField(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch {
		case num == itemIdentifierField && typ == protowire.BytesType:
			item.ID = string(v)
		case num == itemNameField && typ == protowire.BytesType:
			name := string(v)
			item.Name = &name
		case num == itemQuantityField && typ == protowire.BytesType:
			quantity := string(v)
			item.Quantity = &quantity
		case num == itemCheckedField && typ == protowire.VarintType:
			n, _ := protowire.ConsumeVarint(v)
			item.Checked = protowire.DecodeBool(n)
		}
		return nil
	})
	return item, err
}

// eachField walks the top-level fields of a message. For length-delimited
// fields v is the payload, for every other type v is the raw encoded value.
func eachField(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		var v []byte
		if typ == protowire.BytesType {
			v, n = protowire.ConsumeBytes(b)
		} else {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n >= 0 {
				v = b[:n]
			}
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if err := fn(num, typ, v); err != nil {
			return err
		}
	}
	return nil
}
