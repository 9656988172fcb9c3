package render

import "html/template"

// PopupClass is the CSS class attached to every marker popup.
const PopupClass = "institution-popup"

// PopupStyle is applied uniformly to every popup on the map.
const PopupStyle template.CSS = `
    .institution-popup {
        font-family: Arial, sans-serif;
    }
    .institution-popup img {
        max-width: 100%;
        height: auto;
        display: block;
        margin: 10px auto;
    }
    .institution-popup h4 {
        color: #2c3e50;
        border-bottom: 2px solid #3498db;
        padding-bottom: 5px;
    }
    .institution-popup p {
        margin: 5px 0;
        color: #34495e;
    }
`
