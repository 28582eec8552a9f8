package utils

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ExtractString safely extracts a string from a DynamoDB attribute map
func ExtractString(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

// ExtractFloat safely extracts a numeric attribute as float64
func ExtractFloat(item map[string]types.AttributeValue, field string) float64 {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberN); ok {
			if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
				return f
			}
		}
	}
	return 0
}
