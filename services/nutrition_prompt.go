package services

// NutritionPrompt demands the JSON shape described by
// models.NutritionAnalysis. Keep the two in sync: the normalizer reads the
// response exclusively through that type.
const NutritionPrompt = `Extract comprehensive nutritional information from the food label image. Structure the output in JSON format, including fields even if values are missing (use 0 or null). Ensure all units are standardized (g, mg, mcg, %DV) and include daily value percentages where available. Handle abbreviations appropriately (e.g., 'sat.' → 'saturated', 'cholest.' → 'cholesterol'). If any field is missing from the label, use 0 for numerical values and empty strings/null for text fields. Add your confidence score precisely upto 2 floating points to the metadata field. Please include the health insights from your side if possible. I want only JSON data in your response.

    Response Structure:
    {
        "metadata": {
            "confidence_score": "float or null",
            "error_status": "boolean or null"
        },
        "product_details": {
            "name": "string",
            "serving_size": {
                "amount": "float or null",
                "unit": "string",
                "type": "string or null"
            }
        },
        "total_calories": "integer",
        "nutrients": {
            "total_fat": {
                "amount": "float or null",
                "unit": "g",
                "daily_value_percentage": "float or null",
                "group": "fats",
                "category": "macronutrient",
                "sub_nutrients": {
                    "saturated_fat": {
                        "amount": "float or null",
                        "unit": "g",
                        "daily_value_percentage": "float or null",
                        "group": "fats",
                        "category": "macronutrient"
                    },
                    "trans_fat": {
                        "amount": "float or null",
                        "unit": "g",
                        "daily_value_percentage": "float or null",
                        "group": "fats",
                        "category": "macronutrient"
                    }
                }
            },
            "cholesterol": {
                "amount": "float or null",
                "unit": "mg",
                "daily_value_percentage": "float or null",
                "group": "fats",
                "category": "macronutrient"
            },
            "carbohydrates": {
                "amount": "float or null",
                "unit": "g",
                "daily_value_percentage": "float or null",
                "group": "carbohydrates",
                "category": "macronutrient",
                "sub_nutrients": {
                    "dietary_fiber": {
                        "amount": "float or null",
                        "unit": "g",
                        "daily_value_percentage": "float or null",
                        "group": "carbohydrates",
                        "category": "macronutrient"
                    },
                    "total_sugar": {
                        "amount": "float or null",
                        "unit": "g",
                        "daily_value_percentage": "float or null",
                        "group": "carbohydrates",
                        "category": "macronutrient"
                    },
                    "added_sugar": {
                        "amount": "float or null",
                        "unit": "g",
                        "daily_value_percentage": "float or null",
                        "group": "carbohydrates",
                        "category": "macronutrient"
                    }
                }
            },
            "protein": {
                "amount": "float or null",
                "unit": "g",
                "daily_value_percentage": "float or null",
                "group": "protein",
                "category": "macronutrient"
            },
            "sodium": {
                "amount": "float or null",
                "unit": "mg",
                "daily_value_percentage": "float or null",
                "group": "mineral",
                "category": "micronutrient"
            },
            "calcium": {
                "amount": "float or null",
                "unit": "mg",
                "daily_value_percentage": "float or null",
                "group": "mineral",
                "category": "micronutrient"
            },
            "iron": {
                "amount": "float or null",
                "unit": "mg",
                "daily_value_percentage": "float or null",
                "group": "mineral",
                "category": "micronutrient"
            },
            "vitamins": [
                {
                    "vitamin_type": "string",
                    "amount": "float",
                    "unit": "mg",
                    "daily_value_percentage": "float or null",
                    "group": "vitamins",
                    "category": "micronutrient"
                }
            ]
        },
        "ingredients": ["string"] or null,
        "allergens": ["string"] or null
    }`
